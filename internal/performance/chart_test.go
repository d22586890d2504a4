package performance

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChartCurves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pl.png")

	curves := Simulate(simFixture(), StockStrategies())
	if err := ChartCurves(curves, "Running P/L with Different Strategies", path); err != nil {
		t.Fatalf("ChartCurves: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat chart: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("chart file is empty")
	}
}
