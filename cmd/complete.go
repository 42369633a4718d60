package cmd

import (
	"strings"

	"github.com/etnz/allocation"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var formats = predict.Set{"md", "term", "html"}

// Completion returns the shell completion of the application.
func Completion() *complete.Command {
	targetColumns := predict.Set{"Name", "Value", "Target", "Profit", "Loss", "Net", "Trade"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"targets":   predict.Files("*.toml"),
			"positions": predict.Files("*.json"),
			"selector":  predict.Something,
			"c":         predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
			"v":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"positions": {
				Flags: map[string]complete.Predictor{
					"sort":   targetColumns,
					"expand": complete.PredictFunc(targetKeys),
					"nsort":  complete.PredictFunc(targetKeys),
					"all":    predict.Nothing,
					"f":      formats,
				},
			},
			"targets": {
				Flags: map[string]complete.Predictor{
					"sort": predict.Set{"Name", "Weight", "Direct"},
					"desc": predict.Nothing,
					"f":    formats,
				},
			},
			"topic": {
				Args: predict.Set{"positions", "serve", "targets", "*"},
			},
			"serve": {
				Flags: map[string]complete.Predictor{
					"addr": predict.Something,
				},
			},
		},
	}
}

// targetKeys predicts the keys of the targets file found with the default
// flags.
func targetKeys(prefix string) []string {
	targets, err := DecodeTargets()
	if err != nil {
		return nil
	}
	candidates := []string{allocation.UnallocatedKey}
	for _, t := range targets {
		candidates = append(candidates, t.Key())
	}
	var keys []string
	for _, key := range candidates {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
