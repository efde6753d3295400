package extractor

// Source - вид судебного документа, из которого извлечены данные дела
type Source string

const (
	SourceSummons    Source = "summons"
	SourceSentencing Source = "sentencing"
	SourcePolice     Source = "police"
)

// sources в порядке приоритета при слиянии
var sources = []Source{SourceSummons, SourceSentencing, SourcePolice}

// CaseFields - поля дела, которые заполняются при слиянии
var CaseFields = []string{
	"city_or_county",
	"case_number",
	"name",
	"date_to_appear",
	"violations_charged_with",
	"sentencing",
	"fine",
	"further_instruction",
	"report_number",
	"date_of_incident",
	"officer",
	"location_of_occurrence",
}

// Document - разобранный документ (произвольный JSON объект)
type Document map[string]any

// Documents - набор документов по источникам
type Documents map[Source]Document

// ParseSource проверяет имя источника
func ParseSource(s string) (Source, bool) {
	for _, src := range sources {
		if string(src) == s {
			return src, true
		}
	}
	return "", false
}
