package storage

import (
	"errors"
	"testing"

	"xcslab/internal/model"
)

func TestPopulationCodecRoundTrip(t *testing.T) {
	input := testSnapshot("pop-1")

	payload, err := EncodePopulation(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodePopulation(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.ID != input.ID || output.Episode != input.Episode {
		t.Fatalf("unexpected snapshot: %+v", output)
	}
	if len(output.Classifiers) != 1 || output.Classifiers[0].Condition.Kind != model.ConditionKindTernary {
		t.Fatalf("unexpected classifiers: %+v", output.Classifiers)
	}
}

func TestDecodePopulationVersionMismatch(t *testing.T) {
	input := testSnapshot("pop-1")
	input.SchemaVersion = CurrentSchemaVersion + 1

	payload, err := EncodePopulation(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodePopulation(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestRunCodecRoundTrip(t *testing.T) {
	input := model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              "run-1",
		CreatedAtUTC:    "2026-08-20T10:00:00Z",
		Scape:           "corridor",
		Seed:            42,
		Episodes:        2000,
		PopulationID:    "pop-1",
		FinalAccuracy:   0.98,
		MeanReward:      612.5,
	}

	payload, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeRun(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output != input {
		t.Fatalf("round trip mismatch: %+v", output)
	}
}

func TestDecodeRunVersionMismatch(t *testing.T) {
	input := model.RunRecord{ID: "run-1"}

	payload, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestStamp(t *testing.T) {
	stamp := Stamp()
	if stamp.SchemaVersion != CurrentSchemaVersion || stamp.CodecVersion != CurrentCodecVersion {
		t.Fatalf("unexpected stamp: %+v", stamp)
	}
}
