package genai

// Tipe wire generateContent API Gemini. Field optional pakai omitempty supaya
// payload tidak membawa key kosong.

type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

type FunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

type FunctionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

type GenerateContentRequest struct {
	SystemInstruction *Content   `json:"systemInstruction,omitempty"`
	Contents          []*Content `json:"contents"`
	Tools             []Tool     `json:"tools,omitempty"`
}

type Candidate struct {
	Content *Content `json:"content"`
}

type GenerateContentResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
	RoleTool  = "tool"
)

// Text menggabungkan seluruh part teks dari sebuah content.
func (c *Content) Text() string {
	if c == nil {
		return ""
	}
	var out string
	for _, p := range c.Parts {
		out += p.Text
	}
	return out
}

// FunctionCalls mengembalikan semua function call yang diminta model.
func (c *Content) FunctionCalls() []*FunctionCall {
	if c == nil {
		return nil
	}
	var calls []*FunctionCall
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}
