package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Canonical lab-value keys.
const (
	FieldAge           = "age"
	FieldHeightCM      = "height_cm"
	FieldWeightKG      = "weight_kg"
	FieldBMI           = "bmi"
	FieldGlucose       = "glucose"
	FieldCholesterol   = "cholesterol"
	FieldLDL           = "ldl"
	FieldHDL           = "hdl"
	FieldTriglycerides = "triglycerides"
	FieldBPSystolic    = "bp_systolic"
	FieldBPDiastolic   = "bp_diastolic"
	FieldBloodPressure = "blood_pressure"
)

// NumericFields maps canonical field names to parsed values. Every key is
// optional and independent of the others.
type NumericFields map[string]float64

// Get returns the value for key and whether it is present.
func (f NumericFields) Get(key string) (float64, bool) {
	if f == nil {
		return 0, false
	}
	v, ok := f[key]
	return v, ok
}

// Has reports whether every key is present.
func (f NumericFields) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := f.Get(k); !ok {
			return false
		}
	}
	return true
}

// Merge returns a copy of f with the entries of other layered on top.
// The result is nil when both inputs are empty.
func (f NumericFields) Merge(other NumericFields) NumericFields {
	if len(f) == 0 && len(other) == 0 {
		return nil
	}
	out := make(NumericFields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

const number = `(\d{1,4}(?:\.\d+)?)`

// sep tolerates "Glucose: 130", "Glucose - 130" and "Glucose 130".
const sep = `\s*[:\-]?\s*`

// lipidSuffix accepts "LDL Cholesterol", "HDL-Cholesterol" and "LDL-C".
const lipidSuffix = `(?:[\s\-_]*(?:cholesterol|c)\b)?`

// fieldPatterns holds one label-anchored pattern per single-valued field.
var fieldPatterns = map[string]*regexp.Regexp{
	FieldAge:           regexp.MustCompile(`(?i)\bage` + sep + number),
	FieldHeightCM:      regexp.MustCompile(`(?i)\bheight(?:\s*\(cm\))?` + sep + number),
	FieldWeightKG:      regexp.MustCompile(`(?i)\bweight(?:\s*\(kg\))?` + sep + number),
	FieldBMI:           regexp.MustCompile(`(?i)\bbmi` + sep + number),
	FieldGlucose:       regexp.MustCompile(`(?i)\b(?:fasting\s+)?(?:blood\s+)?glucose` + sep + number),
	FieldLDL:           regexp.MustCompile(`(?i)\bldl` + lipidSuffix + sep + number),
	FieldHDL:           regexp.MustCompile(`(?i)\bhdl` + lipidSuffix + sep + number),
	FieldTriglycerides: regexp.MustCompile(`(?i)\btriglycerides?` + sep + number),
}

// cholesterolRe is matched separately so "LDL cholesterol" does not count as
// total cholesterol.
var cholesterolRe = regexp.MustCompile(`(?i)\b(?:total\s+)?cholesterol` + sep + number)

var bloodPressureRe = regexp.MustCompile(`(?i)\b(?:blood\s+pressure|bp)` + sep + `(\d{2,3})\s*/\s*(\d{2,3})`)

// ParseNumericFields pattern-matches labelled lab values out of free text.
// It returns nil when nothing was recognized.
func ParseNumericFields(text string) NumericFields {
	fields := NumericFields{}

	for key, re := range fieldPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				fields[key] = v
			}
		}
	}

	if v, ok := findTotalCholesterol(text); ok {
		fields[FieldCholesterol] = v
	}

	if m := bloodPressureRe.FindStringSubmatch(text); m != nil {
		sys, errS := strconv.ParseFloat(m[1], 64)
		dia, errD := strconv.ParseFloat(m[2], 64)
		if errS == nil && errD == nil {
			fields[FieldBPSystolic] = sys
			fields[FieldBPDiastolic] = dia
			fields[FieldBloodPressure] = sys
		}
	}

	deriveBMI(fields)

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func findTotalCholesterol(text string) (float64, bool) {
	for _, loc := range cholesterolRe.FindAllStringSubmatchIndex(text, -1) {
		prefix := strings.ToLower(strings.TrimRight(text[:loc[0]], " \t\r\n-_"))
		if strings.HasSuffix(prefix, "ldl") || strings.HasSuffix(prefix, "hdl") {
			continue
		}
		if v, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// deriveBMI fills bmi from height and weight when it was not stated.
func deriveBMI(fields NumericFields) {
	if _, ok := fields[FieldBMI]; ok {
		return
	}
	h, okH := fields[FieldHeightCM]
	w, okW := fields[FieldWeightKG]
	if !okH || !okW || h <= 0 {
		return
	}
	m := h / 100
	fields[FieldBMI] = math.Round(w/(m*m)*100) / 100
}

// fieldAliases maps tabular column names onto canonical keys.
var fieldAliases = map[string]string{
	"age":               FieldAge,
	"height":            FieldHeightCM,
	"height_cm":         FieldHeightCM,
	"weight":            FieldWeightKG,
	"weight_kg":         FieldWeightKG,
	"bmi":               FieldBMI,
	"glucose":           FieldGlucose,
	"blood_glucose":     FieldGlucose,
	"fasting_glucose":   FieldGlucose,
	"sugar":             FieldGlucose,
	"cholesterol":       FieldCholesterol,
	"total_cholesterol": FieldCholesterol,
	"ldl":               FieldLDL,
	"hdl":               FieldHDL,
	"triglycerides":     FieldTriglycerides,
	"bp_systolic":       FieldBPSystolic,
	"systolic":          FieldBPSystolic,
	"bp_diastolic":      FieldBPDiastolic,
	"diastolic":         FieldBPDiastolic,
	"bp":                FieldBloodPressure,
	"blood_pressure":    FieldBloodPressure,
}

// NormalizeFieldName maps a column header to its canonical key. Unknown
// headers are returned lowercased with spaces replaced by underscores.
func NormalizeFieldName(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if canonical, ok := fieldAliases[key]; ok {
		return canonical
	}
	return key
}

// numericFromRow keeps every cell of a tabular row that parses as a number.
// A "120/80" style blood pressure cell is split like in free text.
func numericFromRow(row map[string]string) NumericFields {
	fields := NumericFields{}
	for col, raw := range row {
		key := NormalizeFieldName(col)
		value := strings.TrimSpace(raw)
		if key == FieldBloodPressure {
			if sys, dia, ok := splitPressure(value); ok {
				fields[FieldBPSystolic] = sys
				fields[FieldBPDiastolic] = dia
				fields[FieldBloodPressure] = sys
				continue
			}
		}
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			fields[key] = v
		}
	}
	if _, ok := fields[FieldBloodPressure]; !ok {
		if sys, ok := fields[FieldBPSystolic]; ok {
			fields[FieldBloodPressure] = sys
		}
	}
	deriveBMI(fields)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func splitPressure(value string) (float64, float64, bool) {
	sysStr, diaStr, found := strings.Cut(value, "/")
	if !found {
		return 0, 0, false
	}
	sys, errS := strconv.ParseFloat(strings.TrimSpace(sysStr), 64)
	dia, errD := strconv.ParseFloat(strings.TrimSpace(diaStr), 64)
	if errS != nil || errD != nil {
		return 0, 0, false
	}
	return sys, dia, true
}
