package config

import (
	"testing"
	"testing/quick"
	"time"
)

// TestApplyDefaultsIdempotence verifies that applying defaults twice
// produces the same result as applying once.
func TestApplyDefaultsIdempotence(t *testing.T) {
	property := func(tick int32, cadence, level string, width int16) bool {
		mk := func() *Config {
			return &Config{
				Render: RenderConfig{Tick: time.Duration(tick), Cadence: cadence},
				Log:    LogConfig{Level: level},
				Bar:    BarConfig{Width: int(width)},
			}
		}
		c1, c2 := mk(), mk()

		c1.applyDefaults()
		c2.applyDefaults()
		c2.applyDefaults()

		return c1.Render == c2.Render &&
			c1.Log == c2.Log &&
			c1.Bar == c2.Bar &&
			c1.Color == c2.Color
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestApplyDefaultsNonEmptyFields verifies that after applying defaults,
// every optional field has a usable value.
func TestApplyDefaultsNonEmptyFields(t *testing.T) {
	property := func(tick, idle int32, width int16, anchor string) bool {
		c := &Config{
			Render: RenderConfig{Tick: time.Duration(tick), MaxIdle: time.Duration(idle), Anchor: anchor},
			Bar:    BarConfig{Width: int(width)},
		}
		c.applyDefaults()

		return c.Render.Tick > 0 &&
			c.Render.MaxIdle > 0 &&
			c.Render.Cadence != "" &&
			c.Render.Anchor != "" &&
			c.Render.Interactive != "" &&
			c.Color != "" &&
			c.Log.Level != "" &&
			c.Log.Format != "" &&
			c.Bar.Style != "" &&
			c.Bar.Width > 0
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestApplyDefaultsPreservesExistingValues verifies that applyDefaults
// does not overwrite valid values.
func TestApplyDefaultsPreservesExistingValues(t *testing.T) {
	property := func(tick uint16, width uint8, style string) bool {
		c := &Config{
			Render: RenderConfig{Tick: time.Duration(tick) + 1},
			Bar:    BarConfig{Width: int(width) + 1, Style: style},
		}
		c.applyDefaults()

		if c.Render.Tick != time.Duration(tick)+1 {
			return false
		}
		if c.Bar.Width != int(width)+1 {
			return false
		}
		if style != "" && c.Bar.Style != style {
			return false
		}
		return true
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
