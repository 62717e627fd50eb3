package output

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dan1d/clover-sandbox-simulator/internal/cloudwriter"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type parquetField struct {
	name string
	kind string // "utf8" or "int64"
}

// topicSchemas declares the columnar layout per topic. Message keys outside
// the schema are dropped; parquet rows stay flat.
var topicSchemas = map[string][]parquetField{
	TopicOrders: {
		{"timestamp", "int64"}, {"order_id", "utf8"}, {"created_at", "utf8"},
		{"employee_id", "utf8"}, {"customer_id", "utf8"}, {"dining_option", "utf8"},
		{"order_type", "utf8"}, {"meal_period", "utf8"}, {"party_size", "int64"},
		{"subtotal", "int64"}, {"tax_amount", "int64"}, {"tip_amount", "int64"},
		{"service_charge", "int64"}, {"discount_type", "utf8"}, {"discount_amount", "int64"},
		{"line_item_count", "int64"}, {"modifier_count", "int64"}, {"modifier_amount", "int64"},
		{"state", "utf8"},
	},
	TopicPayments: {
		{"timestamp", "int64"}, {"order_id", "utf8"}, {"payment_id", "utf8"},
		{"tender_id", "utf8"}, {"tender_label", "utf8"}, {"amount", "int64"},
		{"tip_amount", "int64"}, {"tax_amount", "int64"}, {"split_percentage", "int64"},
		{"gift_card_id", "utf8"},
	},
	TopicRefunds: {
		{"timestamp", "int64"}, {"order_id", "utf8"}, {"amount", "int64"}, {"reason", "utf8"},
	},
	TopicSummaries: {
		{"timestamp", "int64"}, {"date", "utf8"}, {"total_orders", "int64"},
		{"abandoned_orders", "int64"}, {"total_revenue", "int64"}, {"total_tax", "int64"},
		{"total_tips", "int64"}, {"total_discounts", "int64"}, {"total_service_charges", "int64"},
		{"split_payments", "int64"}, {"cash_payments", "int64"}, {"gift_card_payments", "int64"},
		{"gift_card_redeemed", "int64"}, {"refund_count", "int64"}, {"refund_total", "int64"},
		{"partial_refunds", "int64"},
	},
}

// ParquetDestination writes partitioned parquet files, locally or straight to
// S3 when cloud upload is configured.
type ParquetDestination struct {
	basePath string
	folder   string

	mu      sync.Mutex
	writers map[string]*writer.JSONWriter
	files   map[string]source.ParquetFile

	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetDestination(cfg *models.Config) (*ParquetDestination, error) {
	p := &ParquetDestination{
		basePath: cfg.OutputPath,
		folder:   cfg.OutputFolder,
		writers:  make(map[string]*writer.JSONWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if cfg.UploadToCloud {
		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = cfg.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
	} else {
		p.cleanup()
	}
	return p, nil
}

func (p *ParquetDestination) WriteMessage(topic string, msg []byte) error {
	fields, ok := topicSchemas[topic]
	if !ok {
		return fmt.Errorf("no parquet schema for topic %s", topic)
	}

	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}
	partitionPath, err := partitionFor(event)
	if err != nil {
		return err
	}

	writerKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	p.mu.Lock()
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createWriter(writerKey, topic, partitionPath, fields)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
	}
	p.mu.Unlock()

	row, err := json.Marshal(projectFields(event, fields))
	if err != nil {
		return err
	}
	return pw.Write(string(row))
}

func (p *ParquetDestination) createWriter(writerKey, topic, partitionPath string, fields []parquetField) (*writer.JSONWriter, error) {
	var fw source.ParquetFile
	var err error

	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, partitionPath, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, err
		}
		fw = newCloudParquetFile(cw)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, partitionPath)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, err
		}
	}

	pw, err := writer.NewJSONWriter(schemaFor(fields), fw, 4)
	if err != nil {
		fw.Close()
		return nil, err
	}
	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

func (p *ParquetDestination) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing parquet writer for %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing parquet file for %s: %v", key, err)
			}
		}
	}
	return lastErr
}

// cleanup removes stale .parquet files from a previous local run so partial
// row groups never get appended to.
func (p *ParquetDestination) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error cleaning up parquet files: %v", err)
	}
}

func schemaFor(fields []parquetField) string {
	tags := make([]string, len(fields))
	for i, f := range fields {
		if f.kind == "int64" {
			tags[i] = fmt.Sprintf(`{"Tag":"name=%s, type=INT64, repetitiontype=OPTIONAL"}`, f.name)
		} else {
			tags[i] = fmt.Sprintf(`{"Tag":"name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"}`, f.name)
		}
	}
	return fmt.Sprintf(`{"Tag":"name=parquet_go_root, repetitiontype=REQUIRED","Fields":[%s]}`, strings.Join(tags, ","))
}

// projectFields keeps only schema columns, coercing JSON numbers to integers
// for the int64 columns.
func projectFields(event map[string]interface{}, fields []parquetField) map[string]interface{} {
	row := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		value, ok := event[f.name]
		if !ok {
			continue
		}
		if f.kind == "int64" {
			if n, ok := value.(float64); ok {
				row[f.name] = int64(n)
				continue
			}
		}
		row[f.name] = value
	}
	return row
}

// cloudParquetFile adapts a CloudWriter to the parquet source interface. Only
// sequential writes are supported; the object is uploaded on Close.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
