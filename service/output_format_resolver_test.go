package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/simscan/domain"
)

func TestOutputFormatResolver_Determine(t *testing.T) {
	r := NewOutputFormatResolver()

	tests := []struct {
		name            string
		json, yaml, csv bool
		wantFormat      domain.OutputFormat
		wantExt         string
		wantErr         bool
	}{
		{name: "default text", wantFormat: domain.OutputFormatText},
		{name: "json", json: true, wantFormat: domain.OutputFormatJSON, wantExt: "json"},
		{name: "yaml", yaml: true, wantFormat: domain.OutputFormatYAML, wantExt: "yaml"},
		{name: "csv", csv: true, wantFormat: domain.OutputFormatCSV, wantExt: "csv"},
		{name: "conflict", json: true, csv: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ext, err := r.Determine(tt.json, tt.yaml, tt.csv)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.wantExt, r.Extension(format))
		})
	}
}
