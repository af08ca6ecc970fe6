package simulate

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Record is one logged simulation event: an observation's arrival
// ("observation") or the stable value at the end of a run
// ("stable_value"). Simulation results
// persisted to a log file are explicitly out of spec.md's core scope
// (spec §6, "Persisted state"), but a complete repo still wants a
// debuggable trace of what a simulation run did.
type Record struct {
	RunID      string  `cbor:"run_id"`
	VirtualNS  int64   `cbor:"virtual_ns"`
	Kind       string  `cbor:"kind"`
	SourceID   string  `cbor:"source_id,omitempty"`
	Value      *int64  `cbor:"value,omitempty"`
	Detail     string  `cbor:"detail,omitempty"`
}

// Log appends CBOR-encoded Records to an underlying writer, one record
// per Write call (CBOR's self-describing length framing makes each
// encoded record independently decodable without a wrapping array).
type Log struct {
	w     io.Writer
	runID string
}

// NewLog creates a Log tagged with a freshly generated run id.
func NewLog(w io.Writer) *Log {
	return &Log{w: w, runID: uuid.NewString()}
}

// RunID returns the identifier stamped on every record this Log writes.
func (l *Log) RunID() string {
	return l.runID
}

// Write encodes rec (stamping RunID if unset) and appends it to the log.
func (l *Log) Write(rec Record) error {
	if rec.RunID == "" {
		rec.RunID = l.runID
	}
	data, err := cbor.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = l.w.Write(data)
	return err
}

// ReadAll decodes every record from r until EOF, for tooling that
// inspects a completed simulation's log.
func ReadAll(r io.Reader) ([]Record, error) {
	dec := cbor.NewDecoder(r)
	var records []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}
