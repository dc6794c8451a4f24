package payment

// Request/response shapes for the Lemon Squeezy checkout API
// (JSON:API resources, reduced to the fields this service uses).

type checkoutRequest struct {
	Data checkoutData `json:"data"`
}

type checkoutData struct {
	Type          string                `json:"type"`
	Attributes    checkoutAttributes    `json:"attributes"`
	Relationships checkoutRelationships `json:"relationships"`
}

type checkoutAttributes struct {
	CheckoutData    checkoutCustomData `json:"checkout_data"`
	ProductOptions  productOptions     `json:"product_options"`
	CheckoutOptions checkoutOptions    `json:"checkout_options"`
}

type checkoutCustomData struct {
	Email  string            `json:"email,omitempty"`
	Custom map[string]string `json:"custom,omitempty"`
}

type productOptions struct {
	RedirectURL string `json:"redirect_url,omitempty"`
}

type checkoutOptions struct {
	Embed bool `json:"embed"`
}

type checkoutRelationships struct {
	Store   relationship `json:"store"`
	Variant relationship `json:"variant"`
}

type relationship struct {
	Data relationshipData `json:"data"`
}

type relationshipData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type checkoutResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			URL string `json:"url"`
		} `json:"attributes"`
	} `json:"data"`
}
