package utils

import (
	"math"
	"sort"

	"cinema_factory/model"

	"github.com/shopspring/decimal"
)

type CourseTotal struct {
	Course    string          `json:"course"`
	Succeeded int             `json:"succeeded"`
	Collected decimal.Decimal `json:"collected"`
}

// LedgerSummary aggregates a slice of the ledger. Only successful rows count
// towards Collected.
type LedgerSummary struct {
	Count       int             `json:"count"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Collected   decimal.Decimal `json:"collected"`
	SuccessRate float64         `json:"successRate"` // %
	ByCourse    []CourseTotal   `json:"byCourse"`
}

func SummarizeLedger(records []model.TransactionRecord) LedgerSummary {
	summary := LedgerSummary{Count: len(records), Collected: decimal.Zero, ByCourse: []CourseTotal{}}
	courses := map[string]*CourseTotal{}

	for _, r := range records {
		switch r.Status {
		case string(model.PaymentSuccess):
			summary.Succeeded++
		case string(model.PaymentFailed):
			summary.Failed++
			continue
		default:
			continue
		}
		summary.Collected = summary.Collected.Add(r.Amount)

		ct, ok := courses[r.Course]
		if !ok {
			ct = &CourseTotal{Course: r.Course, Collected: decimal.Zero}
			courses[r.Course] = ct
		}
		ct.Succeeded++
		ct.Collected = ct.Collected.Add(r.Amount)
	}

	if summary.Count > 0 {
		summary.SuccessRate = roundFloat(float64(summary.Succeeded)/float64(summary.Count)*100, 2)
	}
	for _, ct := range courses {
		summary.ByCourse = append(summary.ByCourse, *ct)
	}
	sort.Slice(summary.ByCourse, func(i, j int) bool {
		return summary.ByCourse[i].Course < summary.ByCourse[j].Course
	})
	return summary
}

func roundFloat(val float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(val*p) / p
}
