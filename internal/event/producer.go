package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	pkgkafka "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/kafka"
)

// Kafka topic constants for listing domain events.
const (
	TopicProductCreated = "agrilink.product.created"
	TopicProductUpdated = "agrilink.product.updated"
	TopicProductDeleted = "agrilink.product.deleted"
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from this service.
const SourceAgrilinkAPI = "agrilink-api"

// ProductEventData is the payload for product.created and product.updated
// events. Downstream consumers (notifications, analytics) get the full
// listing snapshot.
type ProductEventData struct {
	ID                string     `json:"id"`
	FarmerID          string     `json:"farmer_id"`
	Title             string     `json:"title"`
	CropType          string     `json:"crop_type"`
	Variety           string     `json:"variety,omitempty"`
	QualityGrade      string     `json:"quality_grade"`
	PricePerUnit      float64    `json:"price_per_unit"`
	Unit              string     `json:"unit"`
	QuantityAvailable float64    `json:"quantity_available"`
	IsOrganic         bool       `json:"is_organic"`
	HarvestDate       *time.Time `json:"harvest_date,omitempty"`
	AvailableFrom     *time.Time `json:"available_from,omitempty"`
	IsActive          bool       `json:"is_active"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID       string `json:"id"`
	FarmerID string `json:"farmer_id"`
}

// Producer publishes listing domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productEventData(p *domain.Product) ProductEventData {
	return ProductEventData{
		ID:                p.ID,
		FarmerID:          p.FarmerID,
		Title:             p.Title,
		CropType:          p.CropType,
		Variety:           p.Variety,
		QualityGrade:      p.QualityGrade,
		PricePerUnit:      p.PricePerUnit,
		Unit:              p.Unit,
		QuantityAvailable: p.QuantityAvailable,
		IsOrganic:         p.IsOrganic,
		HarvestDate:       p.HarvestDate,
		AvailableFrom:     p.AvailableFrom,
		IsActive:          p.IsActive,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceAgrilinkAPI, productEventData(product))
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
		slog.String("crop_type", product.CropType),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductUpdated, product.ID, AggregateTypeProduct, SourceAgrilinkAPI, productEventData(product))
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id, farmerID string) error {
	data := ProductDeletedData{ID: id, FarmerID: farmerID}

	event, err := pkgkafka.NewEvent(TopicProductDeleted, id, AggregateTypeProduct, SourceAgrilinkAPI, data)
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", id),
	)

	return nil
}
