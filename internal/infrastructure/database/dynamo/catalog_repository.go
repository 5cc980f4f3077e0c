// internal/infrastructure/database/dynamo/catalog_repository.go
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/sirupsen/logrus"
)

const (
	// DynamoDB limits
	maxBatchWriteItems = 25
	maxRetryAttempts   = 3

	tableCreationTimeout = 2 * time.Minute
)

// CatalogRepository reads and seeds the vehicles and products tables
type CatalogRepository struct {
	client        API
	vehiclesTable string
	productsTable string
	log           *logrus.Logger
}

// NewCatalogRepository creates a repository over the two tables
func NewCatalogRepository(client API, vehiclesTable, productsTable string, log *logrus.Logger) *CatalogRepository {
	return &CatalogRepository{
		client:        client,
		vehiclesTable: vehiclesTable,
		productsTable: productsTable,
		log:           log,
	}
}

// Load scans both tables into an immutable snapshot. Scan order is
// arbitrary; the snapshot restores catalog order from Position.
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Snapshot, error) {
	vehicles, err := scanAll[catalog.Vehicle](ctx, r.client, r.vehiclesTable)
	if err != nil {
		return nil, err
	}
	products, err := scanAll[catalog.Product](ctx, r.client, r.productsTable)
	if err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"vehicles": len(vehicles),
		"products": len(products),
	}).Debug("catalog loaded from DynamoDB")

	return catalog.NewSnapshot(vehicles, products)
}

func scanAll[T any](ctx context.Context, client API, table string) ([]T, error) {
	var out []T

	paginator := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}

		var items []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s items: %w", table, err)
		}
		out = append(out, items...)
	}
	return out, nil
}

// EnsureTables creates any missing table keyed by string id
func (r *CatalogRepository) EnsureTables(ctx context.Context) error {
	for _, table := range []string{r.vehiclesTable, r.productsTable} {
		if err := r.ensureTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogRepository) ensureTable(ctx context.Context, table string) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err == nil {
		return nil
	}
	var notFoundEx *types.ResourceNotFoundException
	if !errors.As(err, &notFoundEx) {
		return fmt.Errorf("failed to check table existence for %s: %w", table, err)
	}

	_, err = r.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var resourceInUseEx *types.ResourceInUseException
		if errors.As(err, &resourceInUseEx) {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	r.log.WithField("table", table).Info("⏳ Waiting for DynamoDB table")
	waiter := dynamodb.NewTableExistsWaiter(r.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, tableCreationTimeout); err != nil {
		return fmt.Errorf("table %s did not become active: %w", table, err)
	}
	return nil
}

// Seed writes the feed into both tables, overwriting items with the same id
func (r *CatalogRepository) Seed(ctx context.Context, feed *catalog.Feed) error {
	if _, err := catalog.NewSnapshot(feed.Vehicles, feed.Products); err != nil {
		return fmt.Errorf("refusing to seed: %w", err)
	}

	if err := putAll(ctx, r.client, r.vehiclesTable, feed.Vehicles); err != nil {
		return err
	}
	if err := putAll(ctx, r.client, r.productsTable, feed.Products); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"vehicles": len(feed.Vehicles),
		"products": len(feed.Products),
	}).Info("✅ Catalog seeded into DynamoDB")
	return nil
}

func putAll[T any](ctx context.Context, client API, table string, items []T) error {
	// Process items in batches of 25 (DynamoDB limit)
	for i := 0; i < len(items); i += maxBatchWriteItems {
		end := min(i+maxBatchWriteItems, len(items))
		if err := putBatch(ctx, client, table, items[i:end]); err != nil {
			return fmt.Errorf("failed to write %s batch %d-%d: %w", table, i, end-1, err)
		}
	}
	return nil
}

func putBatch[T any](ctx context.Context, client API, table string, items []T) error {
	writeRequests := make([]types.WriteRequest, 0, len(items))
	for _, data := range items {
		item, err := attributevalue.MarshalMap(data)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	unprocessed := map[string][]types.WriteRequest{table: writeRequests}

	for attempt := 0; attempt < maxRetryAttempts && len(unprocessed) > 0; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: unprocessed,
		})
		if err != nil {
			return fmt.Errorf("batch write failed on attempt %d: %w", attempt+1, err)
		}
		unprocessed = result.UnprocessedItems
	}

	if len(unprocessed[table]) > 0 {
		return fmt.Errorf("%d items unprocessed after %d attempts", len(unprocessed[table]), maxRetryAttempts)
	}
	return nil
}
