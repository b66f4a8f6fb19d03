package usecase

// Result é o retorno etiquetado que sai da fronteira do controlador.
type Result struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func NewResult(data interface{}, err error) Result {
	if err == nil {
		return Result{Success: true, Data: data}
	}

	res := Result{Success: false, Error: err.Error(), Code: ErrorCode(err)}
	if verr, ok := err.(*ValidationError); ok {
		res.Fields = verr.Fields
	}
	return res
}
