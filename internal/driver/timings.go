package driver

import (
	"encoding/json"
	"fmt"

	"strcheck/internal/diag"
	"strcheck/internal/observ"
	"strcheck/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an info diagnostic whose note carries the
// timing report as JSON, so machine formats receive it too.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	// Primary без файла: в выводе печатается без пути и выдержки
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: source.NoFileID}, msg).
		WithNote(source.Span{File: source.NoFileID}, string(data))
	bag.Add(entry)
}
