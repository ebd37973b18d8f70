package model

import (
	"encoding/json"
	"fmt"
)

// WeightsVersion is the current ModelWeights format version.
const WeightsVersion = "1.0.0"

// ModelWeights is the plain serialization envelope for a fitted model's
// parameters. It carries the coefficients, the hyperparameters in force at
// fit time, and optional metadata such as a checksum.
type ModelWeights struct {
	// ModelType names the model, e.g. "LinearRegression".
	ModelType string `json:"model_type"`

	// Version is the model format version, for compatibility checks.
	Version string `json:"version"`

	// Coefficients are the learned weights.
	Coefficients []float64 `json:"coefficients"`

	// Intercept is the learned bias term.
	Intercept float64 `json:"intercept"`

	// Features optionally names the input features in column order.
	Features []string `json:"features,omitempty"`

	// Hyperparameters records the configuration used at fit time.
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata holds additional fit-time statistics.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted reports whether the weights come from a trained model.
	IsFitted bool `json:"is_fitted"`
}

// ToJSON serializes the weights as indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON deserializes the weights from JSON.
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate checks internal consistency of the envelope.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}

	if mw.Version == "" {
		return fmt.Errorf("version is required")
	}

	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return fmt.Errorf("unfitted model should not have coefficients")
	}

	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return fmt.Errorf("fitted model must have coefficients")
	}

	return nil
}

// Clone returns a deep copy of the envelope.
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    make([]float64, len(mw.Coefficients)),
		Features:        make([]string, len(mw.Features)),
		Hyperparameters: make(map[string]interface{}),
		Metadata:        make(map[string]interface{}),
	}

	copy(clone.Coefficients, mw.Coefficients)
	copy(clone.Features, mw.Features)

	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}

	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}
