package config

import (
	"shopledger.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"lowstockscan": {Schedule: "0 * * * *", Job: jobs.LowStockScanJob},
	// Add more jobs here
}
