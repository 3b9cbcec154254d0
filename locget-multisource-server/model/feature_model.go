package model

type FeatureResponse struct {
	Feature struct {
		Name          string   `json:"name"`
		Location      string   `json:"location"`
		Start         int      `json:"start"`
		End           int      `json:"end"`
		Strand        string   `json:"strand"`
		Length        int      `json:"length"`
		BridgesOrigin bool     `json:"bridgesOrigin"`
		Lower         []string `json:"lower,omitempty"`
		Upper         []string `json:"upper,omitempty"`
		Urls          []URL    `json:"urls"`
	} `json:"feature"`
}

type URL struct {
	Url string `json:"url"`
}
