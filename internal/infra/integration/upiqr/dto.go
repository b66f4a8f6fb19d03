package upiqr

type GenerateInput struct {
	UPIID     string
	PayeeName string
	Amount    float64
}

// QRCode é só um artefato de exibição; nenhuma cobrança é feita.
type QRCode struct {
	UPIID    string  `json:"upi_id"`
	Amount   float64 `json:"amount"`
	ImageURL string  `json:"image_url"`
	DeepLink string  `json:"deep_link"`
	FileName string  `json:"file_name"`
}

// PaymentApp lista os apps e o formato de UPI id de cada um, para a dica do campo.
type PaymentApp struct {
	Name    string `json:"name"`
	Example string `json:"example"`
}

var PaymentApps = []PaymentApp{
	{Name: "GPay", Example: "yourname@oksbi"},
	{Name: "PhonePe", Example: "yourname@ybl"},
	{Name: "Paytm", Example: "yourname@paytm"},
	{Name: "Amazon Pay", Example: "yourname@apl"},
	{Name: "BHIM", Example: "yourname@upi"},
	{Name: "UPI", Example: "yourname@bank"},
}
