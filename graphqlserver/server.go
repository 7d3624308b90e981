package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"shopledger.GO/graphql"
	gqlmodels "shopledger.GO/graphql/models"
	"shopledger.GO/graphql/registry"
	reportService "shopledger.GO/service/report"
)

// RootResolver is the root for graphql-go. All query fields are read-only
// views over the report service.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{svc: reportService.NewService(r.DB)}
}

// QueryResolver implements Query fields.
type QueryResolver struct {
	svc *reportService.Service
}

func (r *QueryResolver) LowStockProducts(ctx context.Context) ([]*gqlmodels.Product, error) {
	products, err := r.svc.LowStockProducts()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Product, 0, len(products))
	for i := range products {
		out = append(out, mapProduct(&products[i]))
	}
	return out, nil
}

func (r *QueryResolver) Dashboard(ctx context.Context) (*gqlmodels.Dashboard, error) {
	stats, err := r.svc.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return mapDashboard(stats), nil
}

// RecentSalesArgs matches the recentSales query arguments.
type RecentSalesArgs struct {
	Limit *int32
}

func (r *QueryResolver) RecentSales(ctx context.Context, args RecentSalesArgs) ([]*gqlmodels.Sale, error) {
	limit := 0
	if args.Limit != nil {
		limit = int(*args.Limit)
	}
	orders, err := r.svc.RecentSales(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Sale, 0, len(orders))
	for i := range orders {
		out = append(out, mapSale(&orders[i]))
	}
	return out, nil
}

// TransactionHistoryArgs matches the transactionHistory query arguments.
type TransactionHistoryArgs struct {
	ProductID int32
	Limit     *int32
}

func (r *QueryResolver) TransactionHistory(ctx context.Context, args TransactionHistoryArgs) ([]*gqlmodels.StockTransaction, error) {
	limit := 0
	if args.Limit != nil {
		limit = int(*args.Limit)
	}
	history, err := r.svc.TransactionHistory(uint(args.ProductID), limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.StockTransaction, 0, len(history))
	for i := range history {
		out = append(out, mapTransaction(&history[i]))
	}
	return out, nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
