package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jparise/howlong/internal/timeparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func newTestConverter(t *testing.T) (*Converter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return New(stdout, stderr, false, zaptest.NewLogger(t)), stdout, stderr
}

func TestConvertText(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		stdout string
	}{
		{
			name: "single expression",
			opts: Options{
				Inputs:   []string{"2d 3h"},
				Duration: timeparse.DefaultOptions(),
			},
			stdout: "2 days and 3 hours\n",
		},
		{
			name: "multiple expressions are labeled",
			opts: Options{
				Inputs:   []string{"1h", "90 mins"},
				Duration: timeparse.DefaultOptions(),
			},
			stdout: "1h: 1 hour\n90 mins: 1 hour and 30 minutes\n",
		},
		{
			name: "terse",
			opts: Options{
				Inputs:   []string{"90061000"},
				Mode:     ModeMilliseconds,
				Duration: timeparse.Options{Short: true, Relevant: 4},
			},
			stdout: "1d, 1h, 1m, 1s\n",
		},
		{
			name: "milliseconds",
			opts: Options{
				Inputs:   []string{"90061000", "inf", "0"},
				Mode:     ModeMilliseconds,
				Duration: timeparse.DefaultOptions(),
			},
			stdout: "90061000: 1 day and 1 hour\ninf: 1 eternity\n0: 0 milliseconds\n",
		},
		{
			name: "since",
			opts: Options{
				Inputs:   []string{"2020-01-01"},
				Mode:     ModeSince,
				Duration: timeparse.DefaultOptions(),
				Now:      time.Date(2020, 1, 2, 3, 0, 0, 0, time.UTC),
			},
			stdout: "1 day and 3 hours\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, stdout, stderr := newTestConverter(t)

			err := c.Convert(context.Background(), &tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.stdout, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestConvertPreservesOrder(t *testing.T) {
	var inputs []string
	var want strings.Builder
	for i := 1; i <= 200; i++ {
		input := fmt.Sprintf("%d", i*1000)
		inputs = append(inputs, input)

		d := timeparse.Format(float64(i*1000), nil)
		fmt.Fprintf(&want, "%s: %s\n", input, d)
	}

	c, stdout, _ := newTestConverter(t)
	err := c.Convert(context.Background(), &Options{
		Inputs:   inputs,
		Mode:     ModeMilliseconds,
		Duration: timeparse.DefaultOptions(),
		Jobs:     8,
	})
	require.NoError(t, err)
	assert.Equal(t, want.String(), stdout.String())
}

func TestConvertPartialFailure(t *testing.T) {
	c, stdout, stderr := newTestConverter(t)

	err := c.Convert(context.Background(), &Options{
		Inputs:   []string{"1h", "h5", "5"},
		Duration: timeparse.Options{Strict: true},
		Jobs:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, "1h: 1 hour\n", stdout.String())
	assert.Contains(t, stderr.String(), "Warning: h5: invalid duration")
	assert.Contains(t, stderr.String(), "Warning: 5: invalid duration")
	assert.Contains(t, stderr.String(), "2 of 3 inputs could not be converted")
}

func TestConvertAllFail(t *testing.T) {
	c, stdout, stderr := newTestConverter(t)

	err := c.Convert(context.Background(), &Options{
		Inputs: []string{"", "nan", "-inf"},
		Mode:   ModeMilliseconds,
		Jobs:   1,
	})
	require.Error(t, err)
	assert.Equal(t, "failed to convert all 3 inputs", err.Error())
	assert.Empty(t, stdout.String())
	assert.Equal(t, 3, strings.Count(stderr.String(), "Warning:"))
}

func TestConvertNoInputs(t *testing.T) {
	c, stdout, stderr := newTestConverter(t)

	err := c.Convert(context.Background(), &Options{})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "No inputs to convert")
}

func TestConvertCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, stdout, _ := newTestConverter(t)
	err := c.Convert(ctx, &Options{Inputs: []string{"1h"}, Jobs: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())
}

func TestConvertJSON(t *testing.T) {
	c, stdout, _ := newTestConverter(t)

	err := c.Convert(context.Background(), &Options{
		Inputs:   []string{"2d3h", "1 eternity"},
		Format:   FormatJSON,
		Duration: timeparse.DefaultOptions(),
	})
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "2d3h", records[0].Input)
	assert.Equal(t, "2 days and 3 hours", records[0].Duration)
	require.NotNil(t, records[0].Milliseconds)
	assert.Equal(t, float64(183600000), *records[0].Milliseconds)
	assert.False(t, records[0].Eternity)
	assert.Equal(t, []Component{{Unit: "day", Count: 2}, {Unit: "hour", Count: 3}}, records[0].Components)

	assert.Equal(t, "1 eternity", records[1].Duration)
	assert.Nil(t, records[1].Milliseconds)
	assert.True(t, records[1].Eternity)
	assert.Equal(t, []Component{{Unit: "eternity", Count: 1}}, records[1].Components)
}

func TestConvertJSONNegativeEternity(t *testing.T) {
	c, stdout, stderr := newTestConverter(t)

	err := c.Convert(context.Background(), &Options{
		Inputs:   []string{"-1 eternity", "1h"},
		Format:   FormatJSON,
		Duration: timeparse.DefaultOptions(),
	})
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "1h", records[0].Input)
	assert.Equal(t, "1 hour", records[0].Duration)

	assert.Contains(t, stderr.String(), "Warning: -1 eternity: duration -Inf is not finite")
	assert.Contains(t, stderr.String(), "1 of 2 inputs could not be converted")
}

func TestNewRecordSkipsNonFiniteCounts(t *testing.T) {
	r := newRecord("-inf", timeparse.Format(math.Inf(-1), nil))

	assert.Nil(t, r.Milliseconds)
	assert.False(t, r.Eternity)
	assert.Empty(t, r.Components)

	_, err := json.Marshal(r)
	assert.NoError(t, err)
}

func TestConvertYAML(t *testing.T) {
	c, stdout, _ := newTestConverter(t)

	err := c.Convert(context.Background(), &Options{
		Inputs:   []string{"90 mins"},
		Format:   FormatYAML,
		Duration: timeparse.Options{Short: true, Relevant: 2},
	})
	require.NoError(t, err)

	var records []Record
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "90 mins", records[0].Input)
	assert.Equal(t, "1h, 30m", records[0].Duration)
	assert.Equal(t, []Component{{Unit: "hour", Count: 1}, {Unit: "minute", Count: 30}}, records[0].Components)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	for _, s := range []string{"", "xml", "JSON"} {
		_, err := ParseFormat(s)
		assert.Error(t, err, "ParseFormat(%q)", s)
	}
}

func TestParseMilliseconds(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "1500", want: 1500},
		{input: " 1.5 ", want: 1.5},
		{input: "-60000", want: -60000},
		{input: "1e3", want: 1000},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "-Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseMilliseconds(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
