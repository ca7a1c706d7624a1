package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/streams-cli/internal/config"
	"github.com/bnema/streams-cli/internal/domain"
	"github.com/bnema/streams-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	streamsFileMode = 0o600
	streamsDirMode  = 0o700
	tempFilePattern = ".streams-*.toml.tmp"
)

type Repository struct {
	streamsPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.StreamRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	defaultPath, err := config.DefaultStreamsPath()
	if err != nil {
		return nil, err
	}
	cfg.SetDefault(config.StreamsPathKey, defaultPath)

	streamsPath := cfg.GetString(config.StreamsPathKey)
	if streamsPath == "" {
		return nil, errors.New("streams path is empty")
	}
	streamsPath, err = normalizeStreamsPath(streamsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{streamsPath: streamsPath, mu: lockForPath(streamsPath)}, nil
}

func (r *Repository) Path() string {
	return r.streamsPath
}

func (r *Repository) Save(ctx context.Context, stream domain.Stream) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(stream)
	updated := false
	for i := range file.Streams {
		if file.Streams[i].ID == encoded.ID {
			file.Streams[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Streams = append(file.Streams, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Delete(ctx context.Context, id domain.StreamID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Streams[:0]
	for _, entry := range file.Streams {
		if entry.ID != string(id) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Streams) {
		return domain.ErrStreamNotFound
	}
	file.Streams = kept

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.StreamID) (domain.Stream, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stream{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Stream{}, err
	}

	for _, entry := range file.Streams {
		if entry.ID == string(id) {
			return fromSchema(entry)
		}
	}

	return domain.Stream{}, domain.ErrStreamNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	streams := make([]domain.Stream, 0, len(file.Streams))
	for _, entry := range file.Streams {
		stream, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		streams = append(streams, stream)
	}

	return streams, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.streamsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read streams file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode streams file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeStreamsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve streams path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.streamsPath), streamsDirMode); err != nil {
		return fmt.Errorf("create streams directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode streams file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.streamsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp streams file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp streams file: %w", err)
	}

	if err := tempFile.Chmod(streamsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp streams file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp streams file: %w", err)
	}

	if err := os.Rename(tempName, r.streamsPath); err != nil {
		return fmt.Errorf("replace streams file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.streamsPath, streamsFileMode); err != nil {
		return fmt.Errorf("chmod streams file: %w", err)
	}

	return nil
}

func toSchema(stream domain.Stream) streamSchema {
	withdrawn := ""
	if !stream.WithdrawnAmount.IsZero() {
		withdrawn = stream.WithdrawnAmount.String()
	}

	return streamSchema{
		ID:              string(stream.ID),
		Sender:          stream.Sender,
		Recipient:       stream.Recipient,
		TokenSymbol:     stream.TokenSymbol,
		TotalAmount:     stream.TotalAmount.String(),
		WithdrawnAmount: withdrawn,
		StartTimeMs:     toMillis(stream.StartTime),
		EndTimeMs:       toMillis(stream.EndTime),
		Status:          string(stream.Status),
	}
}

func fromSchema(entry streamSchema) (domain.Stream, error) {
	total, err := parseAmount(entry.TotalAmount)
	if err != nil {
		return domain.Stream{}, fmt.Errorf("decode stream %s total_amount: %w", entry.ID, err)
	}

	withdrawn, err := parseAmount(entry.WithdrawnAmount)
	if err != nil {
		return domain.Stream{}, fmt.Errorf("decode stream %s withdrawn_amount: %w", entry.ID, err)
	}

	status := domain.StreamStatus(entry.Status)
	if parsed, err := domain.ParseStatus(entry.Status); err == nil {
		status = parsed
	}

	return domain.Stream{
		ID:              domain.StreamID(entry.ID),
		Sender:          entry.Sender,
		Recipient:       entry.Recipient,
		TokenSymbol:     entry.TokenSymbol,
		TotalAmount:     total,
		WithdrawnAmount: withdrawn,
		StartTime:       fromMillis(entry.StartTimeMs),
		EndTime:         fromMillis(entry.EndTimeMs),
		Status:          status,
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(raw)
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}

	return value.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
