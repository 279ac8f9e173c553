package main

import (
	"fmt"
	"io"

	"github.com/ChicagoDave/citygen/pkg/analytics"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, e := range r.Warnings {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, e validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
	if e.Path != "" {
		fmt.Fprintf(w, "    -> %s = %v\n", e.Path, e.ActualValue)
	}
	if e.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", e.Expected)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printStats(w io.Writer, s analytics.Stats) {
	fmt.Fprintf(w, "City %s (%s, %s)\n", s.Dimensions, s.CitySize, formatArea(s.AreaM2))
	fmt.Fprintln(w, "===================================")
	fmt.Fprintf(w, "  Zones:          %d\n", s.TotalZones)
	fmt.Fprintf(w, "  Roads:          %d (%.1f km)\n", s.TotalRoads, s.TotalRoadLengthM/1000)
	fmt.Fprintf(w, "  Intersections:  %d\n", s.TotalIntersections)
	fmt.Fprintf(w, "  Buildings:      %d\n", s.TotalBuildings)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-12s %8s %10s %12s %12s %14s\n",
		"Zone type", "Zones", "Buildings", "Area", "Avg height", "Floor area")
	fmt.Fprintf(w, "%-12s %8s %10s %12s %12s %14s\n",
		"------------", "--------", "----------", "------------", "------------", "--------------")
	for _, zt := range spec.ZoneTypes {
		zs := s.ZoneStats[zt]
		fmt.Fprintf(w, "%-12s %8d %10d %12s %11.1fm %14s\n",
			zt, zs.Zones, zs.Buildings, formatArea(zs.TotalArea), zs.AvgBuildingHeight, formatArea(zs.FloorArea))
	}
}

func formatArea(m2 float64) string {
	if m2 >= 1_000_000 {
		return fmt.Sprintf("%.2f km²", m2/1_000_000)
	}
	if m2 >= 10_000 {
		return fmt.Sprintf("%.1f ha", m2/10_000)
	}
	return fmt.Sprintf("%.0f m²", m2)
}
