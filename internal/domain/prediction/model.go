package prediction

import (
	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/classifier"
)

// FirstReportFeatures is the lab panel scored by the first-report model.
type FirstReportFeatures struct {
	Age          float64 `json:"Age"`
	Sex          string  `json:"Sex"`
	Albumin      float64 `json:"Albumin"`
	Bilirubin    float64 `json:"Bilirubin"`
	ALT          float64 `json:"ALT"`
	AST          float64 `json:"AST"`
	ALP          float64 `json:"ALP"`
	INR          float64 `json:"INR"`
	Platelets    float64 `json:"Platelets"`
	Sodium       float64 `json:"Sodium"`
	Creatinine   float64 `json:"Creatinine"`
	Ascites      int     `json:"Ascites"`
	Hepatomegaly int     `json:"Hepatomegaly"`
	Spiders      int     `json:"Spiders"`
	Edema        int     `json:"Edema"`
}

// FollowupReportFeatures adds treatment history to a first-report panel.
type FollowupReportFeatures struct {
	FirstReportFeatures
	PreviousStage int `json:"previous_stage"`
	BedRest       int `json:"bed_rest"`
	Drugs         int `json:"drugs"`
}

// Result is the response of both prediction endpoints.
type Result struct {
	PredictedStage     string             `json:"predicted_stage"`
	StageProbabilities map[string]float64 `json:"stage_probabilities"`
}

// FirstReportSchema lists the first-report columns in wire order.
var FirstReportSchema = []string{
	"Age", "Sex", "Albumin", "Bilirubin", "ALT", "AST", "ALP", "INR",
	"Platelets", "Sodium", "Creatinine", "Ascites", "Hepatomegaly", "Spiders", "Edema",
}

// FollowupReportSchema lists the follow-up columns in wire order.
var FollowupReportSchema = append(append([]string(nil), FirstReportSchema...),
	"previous_stage", "bed_rest", "drugs")

func (f *FirstReportFeatures) Validate() error {
	if f.Sex != "M" && f.Sex != "F" {
		return apperr.InvalidInput("field \"Sex\" must be one of [M F]")
	}
	flags := []struct {
		name string
		v    int
	}{
		{"Ascites", f.Ascites},
		{"Hepatomegaly", f.Hepatomegaly},
		{"Spiders", f.Spiders},
		{"Edema", f.Edema},
	}
	for _, fl := range flags {
		if fl.v != 0 && fl.v != 1 {
			return apperr.InvalidInput("field %q must be one of [0 1]", fl.name)
		}
	}
	return nil
}

func (f *FollowupReportFeatures) Validate() error {
	if err := f.FirstReportFeatures.Validate(); err != nil {
		return err
	}
	if f.BedRest != 0 && f.BedRest != 1 {
		return apperr.InvalidInput("field \"bed_rest\" must be one of [0 1]")
	}
	if f.Drugs != 0 && f.Drugs != 1 {
		return apperr.InvalidInput("field \"drugs\" must be one of [0 1]")
	}
	return nil
}

func (f *FirstReportFeatures) Row() classifier.Row {
	return classifier.Row{
		"Age":          f.Age,
		"Sex":          f.Sex,
		"Albumin":      f.Albumin,
		"Bilirubin":    f.Bilirubin,
		"ALT":          f.ALT,
		"AST":          f.AST,
		"ALP":          f.ALP,
		"INR":          f.INR,
		"Platelets":    f.Platelets,
		"Sodium":       f.Sodium,
		"Creatinine":   f.Creatinine,
		"Ascites":      f.Ascites,
		"Hepatomegaly": f.Hepatomegaly,
		"Spiders":      f.Spiders,
		"Edema":        f.Edema,
	}
}

func (f *FollowupReportFeatures) Row() classifier.Row {
	row := f.FirstReportFeatures.Row()
	row["previous_stage"] = f.PreviousStage
	row["bed_rest"] = f.BedRest
	row["drugs"] = f.Drugs
	return row
}
