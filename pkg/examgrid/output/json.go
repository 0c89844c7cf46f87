// Package output serializes ingestion results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/inference"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// BlockSummary describes one candidate block without its rows.
type BlockSummary struct {
	ID         string  `json:"block_id"`
	RangeLabel string  `json:"range_label"`
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	Score      float64 `json:"score"`
	Chosen     bool    `json:"chosen"`
}

// RecordView is an exam record with the values derived for consumers.
type RecordView struct {
	*models.ExamRecord
	Status         models.Status  `json:"status"`
	EffectiveClass string         `json:"effective_class"`
	HasClassData   bool           `json:"has_class_data"`
	Blocks         []BlockSummary `json:"blocks"`
}

// BatchView is the serialized form of a batch.
type BatchView struct {
	ID       string           `json:"batch_id"`
	Records  []RecordView     `json:"records"`
	Failures []models.Failure `json:"failures,omitempty"`
}

// Encoder renders records using an inference engine for derived values.
type Encoder struct {
	Engine *inference.Engine
	Pretty bool
}

// NewEncoder returns an Encoder; a nil engine uses default parameters.
func NewEncoder(engine *inference.Engine, pretty bool) *Encoder {
	if engine == nil {
		engine = inference.New(inference.DefaultParams())
	}
	return &Encoder{Engine: engine, Pretty: pretty}
}

// Record builds the view of one record.
func (e *Encoder) Record(rec *models.ExamRecord) RecordView {
	view := RecordView{
		ExamRecord:     rec,
		Status:         rec.Status(),
		EffectiveClass: e.Engine.EffectiveClass(rec),
		HasClassData:   e.Engine.HasUsableClassData(rec),
		Blocks:         make([]BlockSummary, 0, len(rec.Blocks)),
	}
	for _, b := range rec.Blocks {
		view.Blocks = append(view.Blocks, BlockSummary{
			ID:         b.ID,
			RangeLabel: b.RangeLabel,
			Columns:    len(b.Columns),
			Rows:       len(b.Rows),
			Score:      b.Score,
			Chosen:     b.ID == rec.BlockID,
		})
	}
	return view
}

// Batch builds the view of a batch.
func (e *Encoder) Batch(batch *models.Batch) BatchView {
	view := BatchView{ID: batch.ID, Failures: batch.Failures, Records: make([]RecordView, 0, len(batch.Records))}
	for _, rec := range batch.Records {
		view.Records = append(view.Records, e.Record(rec))
	}
	return view
}

// EncodeBatch serializes a batch.
func (e *Encoder) EncodeBatch(batch *models.Batch) ([]byte, error) {
	return e.marshal(e.Batch(batch))
}

// EncodeRecord serializes a single record.
func (e *Encoder) EncodeRecord(rec *models.ExamRecord) ([]byte, error) {
	return e.marshal(e.Record(rec))
}

func (e *Encoder) marshal(v interface{}) ([]byte, error) {
	if e.Pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToJSON serializes a batch with default inference parameters.
func ToJSON(batch *models.Batch, pretty bool) ([]byte, error) {
	return NewEncoder(nil, pretty).EncodeBatch(batch)
}

// RecordToJSON serializes one record with default inference parameters.
func RecordToJSON(rec *models.ExamRecord, pretty bool) ([]byte, error) {
	return NewEncoder(nil, pretty).EncodeRecord(rec)
}
