// Package json decodes stream records produced by an external indexer.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Record is one stream as it appears in a feed file. Times are epoch
// milliseconds or RFC3339 strings; amounts are decimal strings or numbers.
type Record struct {
	ID              string          `json:"id" validate:"required"`
	Sender          string          `json:"sender"`
	Recipient       string          `json:"recipient"`
	TotalAmount     json.Number     `json:"totalAmount" validate:"required,numeric"`
	WithdrawnAmount json.Number     `json:"withdrawnAmount" validate:"omitempty,numeric"`
	StartTime       json.RawMessage `json:"startTime" validate:"required"`
	EndTime         json.RawMessage `json:"endTime" validate:"required"`
	Status          string          `json:"status" validate:"required"`
	TokenSymbol     string          `json:"tokenSymbol"`
}

type FieldError struct {
	Index   int
	Field   string
	Message string
	Err     error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Message)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// ReadFile decodes the feed stored at path.
func ReadFile(path string) ([]domain.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a JSON array of records and converts every entry. All
// validation failures are returned together.
func Decode(r io.Reader) ([]domain.Stream, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	streams := make([]domain.Stream, 0, len(records))
	var errs []error
	for i, record := range records {
		stream, err := record.toStream(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		streams = append(streams, stream)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return streams, nil
}

func (r Record) toStream(index int) (domain.Stream, error) {
	if err := validate.Struct(r); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errs := make([]error, 0, len(validationErrors))
			for _, fe := range validationErrors {
				errs = append(errs, FieldError{Index: index, Field: fe.Field(), Message: fieldMessage(fe)})
			}
			return domain.Stream{}, errors.Join(errs...)
		}
		return domain.Stream{}, err
	}

	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return domain.Stream{}, FieldError{Index: index, Field: "Status", Message: err.Error(), Err: err}
	}

	total, err := decimal.NewFromString(r.TotalAmount.String())
	if err != nil {
		return domain.Stream{}, FieldError{Index: index, Field: "TotalAmount", Message: "TotalAmount must be a decimal"}
	}

	withdrawn := decimal.Zero
	if r.WithdrawnAmount != "" {
		withdrawn, err = decimal.NewFromString(r.WithdrawnAmount.String())
		if err != nil {
			return domain.Stream{}, FieldError{Index: index, Field: "WithdrawnAmount", Message: "WithdrawnAmount must be a decimal"}
		}
	}

	start, err := parseTime(r.StartTime)
	if err != nil {
		return domain.Stream{}, FieldError{Index: index, Field: "StartTime", Message: "StartTime " + err.Error()}
	}

	end, err := parseTime(r.EndTime)
	if err != nil {
		return domain.Stream{}, FieldError{Index: index, Field: "EndTime", Message: "EndTime " + err.Error()}
	}

	stream := domain.Stream{
		ID:              domain.StreamID(strings.TrimSpace(r.ID)),
		Sender:          strings.TrimSpace(r.Sender),
		Recipient:       strings.TrimSpace(r.Recipient),
		TokenSymbol:     strings.TrimSpace(r.TokenSymbol),
		TotalAmount:     total,
		WithdrawnAmount: withdrawn,
		StartTime:       start,
		EndTime:         end,
		Status:          status,
	}
	if err := stream.Validate(); err != nil {
		return domain.Stream{}, FieldError{Index: index, Message: err.Error(), Err: err}
	}

	return stream, nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// ParseTime accepts epoch milliseconds or an RFC3339 timestamp.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be epoch milliseconds or RFC3339: %q", raw)
	}

	return t.UTC(), nil
}

func parseTime(raw json.RawMessage) (time.Time, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return ParseTime(text)
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return time.Time{}, fmt.Errorf("must be epoch milliseconds or RFC3339: %s", string(raw))
	}

	return ParseTime(number.String())
}
