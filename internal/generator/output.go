package generator

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/chrisdamba/custgen/internal/cloudwriter"
	"github.com/chrisdamba/custgen/internal/generator/producers"
	"github.com/chrisdamba/custgen/internal/models"
	"github.com/chrisdamba/custgen/internal/output"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type OutputDestination interface {
	WriteCustomer(customer models.Customer) error
	Close() error
}

// TextOutput writes the customers.txt line format: "id:class,arrival,service\n".
type TextOutput struct {
	w      *bufio.Writer
	closer io.Closer
}

type ConsoleOutput struct {
	*TextOutput
}

type CSVOutput struct {
	w      *csv.Writer
	closer io.Closer
}

type JSONOutput struct {
	w      *bufio.Writer
	enc    *json.Encoder
	closer io.Closer
}

type ParquetOutput struct {
	pw   *writer.ParquetWriter
	file source.ParquetFile
}

type parquetCustomer struct {
	ID          int64 `parquet:"name=id, type=INT64"`
	Class       int64 `parquet:"name=class, type=INT64"`
	ArrivalTime int64 `parquet:"name=arrival_time, type=INT64"`
	ServiceTime int64 `parquet:"name=service_time, type=INT64"`
}

type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

// NewTextOutput writes to w. If w is also an io.Closer it is closed by Close.
func NewTextOutput(w io.Writer) *TextOutput {
	closer, _ := w.(io.Closer)
	return &TextOutput{w: bufio.NewWriter(w), closer: closer}
}

func NewConsoleOutput() *ConsoleOutput {
	return &ConsoleOutput{TextOutput: &TextOutput{w: bufio.NewWriter(os.Stdout)}}
}

func NewCSVOutput(w io.Writer) (*CSVOutput, error) {
	closer, _ := w.(io.Closer)
	c := &CSVOutput{w: csv.NewWriter(w), closer: closer}
	if err := c.w.Write(models.CustomerCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	return c, nil
}

func NewJSONOutput(w io.Writer) *JSONOutput {
	closer, _ := w.(io.Closer)
	bw := bufio.NewWriter(w)
	return &JSONOutput{w: bw, enc: json.NewEncoder(bw), closer: closer}
}

func NewParquetOutput(file source.ParquetFile) (*ParquetOutput, error) {
	pw, err := writer.NewParquetWriter(file, new(parquetCustomer), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	return &ParquetOutput{pw: pw, file: file}, nil
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{
		cloudWriter: cloudWriter,
		offset:      0,
	}
}

func (t *TextOutput) WriteCustomer(customer models.Customer) error {
	if _, err := t.w.WriteString(customer.String()); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

func (t *TextOutput) Close() error {
	err := t.w.Flush()
	if t.closer != nil {
		err = errors.Join(err, t.closer.Close())
	}
	return err
}

func (c *CSVOutput) WriteCustomer(customer models.Customer) error {
	return c.w.Write(customer.CSVRecord())
}

func (c *CSVOutput) Close() error {
	c.w.Flush()
	err := c.w.Error()
	if c.closer != nil {
		err = errors.Join(err, c.closer.Close())
	}
	return err
}

func (j *JSONOutput) WriteCustomer(customer models.Customer) error {
	return j.enc.Encode(customer)
}

func (j *JSONOutput) Close() error {
	err := j.w.Flush()
	if j.closer != nil {
		err = errors.Join(err, j.closer.Close())
	}
	return err
}

func (p *ParquetOutput) WriteCustomer(customer models.Customer) error {
	row := parquetCustomer{
		ID:          int64(customer.ID),
		Class:       int64(customer.Class),
		ArrivalTime: int64(customer.ArrivalTime),
		ServiceTime: int64(customer.ServiceTime),
	}
	if err := p.pw.Write(row); err != nil {
		return fmt.Errorf("failed to write parquet row: %w", err)
	}
	return nil
}

func (p *ParquetOutput) Close() error {
	if err := p.pw.WriteStop(); err != nil {
		_ = p.file.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return p.file.Close()
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	// objects are not reopened, the current instance keeps writing
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	// the object is created implicitly on the first write
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
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

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	n, err = c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

// newStreamOutput wraps w in the line oriented output for format.
func newStreamOutput(format string, w io.WriteCloser) (OutputDestination, error) {
	switch format {
	case models.FormatText:
		return NewTextOutput(w), nil
	case models.FormatCSV:
		return NewCSVOutput(w)
	case models.FormatJSON:
		return NewJSONOutput(w), nil
	case models.FormatParquet:
		return nil, fmt.Errorf("%w: parquet needs a seekable file", models.ErrUnsupportedOutput)
	default:
		return nil, fmt.Errorf("%w: format %q", models.ErrUnsupportedOutput, format)
	}
}

func (g *Generator) determineOutputDestination(ctx context.Context) (OutputDestination, error) {
	cfg := g.Config

	if cfg.KafkaEnabled {
		producer, err := producers.NewSaramaProducer(cfg, g.RunID)
		if err != nil {
			return nil, err
		}
		g.log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("Writing customers to Kafka")
		return producer, nil
	}

	if cfg.PostgresURL != "" {
		pg, err := output.NewPostgresOutput(ctx, cfg.PostgresURL, g.RunID)
		if err != nil {
			return nil, err
		}
		g.log.Info().Str("run_id", g.RunID).Msg("Writing customers to PostgreSQL")
		return pg, nil
	}

	switch cfg.OutputFormat {
	case models.FormatConsole:
		return NewConsoleOutput(), nil
	case models.FormatText, models.FormatCSV, models.FormatJSON, models.FormatParquet:
	default:
		return nil, fmt.Errorf("%w: format %q", models.ErrUnsupportedOutput, cfg.OutputFormat)
	}

	switch cfg.OutputDestination {
	case models.DestinationS3:
		if cfg.CloudStorage.Provider != "s3" {
			return nil, fmt.Errorf("%w: cloud storage provider %q", models.ErrUnsupportedOutput, cfg.CloudStorage.Provider)
		}
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return g.cloudOutput(factory)
	case models.DestinationLocal, "":
	default:
		return nil, fmt.Errorf("%w: destination %q", models.ErrUnsupportedOutput, cfg.OutputDestination)
	}

	g.log.Info().Str("path", cfg.OutputFile).Str("format", cfg.OutputFormat).Msg("Writing customers to file")
	if cfg.OutputFormat == models.FormatParquet {
		fw, err := local.NewLocalFileWriter(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
		out, err := NewParquetOutput(fw)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		return out, nil
	}
	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", cfg.OutputFile, err)
	}
	out, err := newStreamOutput(cfg.OutputFormat, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return out, nil
}

// cloudOutput uploads the batch to <bucket>/<run id>/<object key>.
func (g *Generator) cloudOutput(factory cloudwriter.CloudWriterFactory) (OutputDestination, error) {
	cfg := g.Config
	if cfg.CloudStorage.BucketName == "" {
		return nil, fmt.Errorf("%w: s3 destination needs a bucket name", models.ErrUnsupportedOutput)
	}

	objectPath := path.Join(g.RunID, cfg.CloudStorage.ObjectKey)
	cw, err := factory.NewWriter(cfg.CloudStorage.BucketName, objectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
	}
	g.log.Info().Str("bucket", cfg.CloudStorage.BucketName).Str("object", objectPath).Msg("Writing customers to cloud storage")

	if cfg.OutputFormat == models.FormatParquet {
		return NewParquetOutput(NewCloudParquetFile(cw))
	}
	return newStreamOutput(cfg.OutputFormat, cw)
}
