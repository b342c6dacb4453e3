package models

// SubPage is one follow-up page shown after a day's result.
type SubPage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Scenario is the immutable per-day configuration record. The core reads
// it but never writes it.
type Scenario struct {
	Day                int         `json:"day"`
	Prompt             string      `json:"prompt"`
	OptionAText        string      `json:"optionA_text"`
	OptionBText        string      `json:"optionB_text"`
	OptionADetails     []string    `json:"optionA_details,omitempty"`
	OptionBDetails     []string    `json:"optionB_details,omitempty"`
	OptionAConsequence Consequence `json:"optionA_consequence"`
	OptionBConsequence Consequence `json:"optionB_consequence"`
	SubPages           []SubPage   `json:"subPages,omitempty"`
}
