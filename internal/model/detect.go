package model

// DetectResponse は POST /detect のレスポンス。
// bbox は [x, y, width, height] (検出APIの正規化座標のまま)
type DetectResponse struct {
	Found      bool      `json:"found"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
	Error      string    `json:"error"`
}

// DetectedObject は検出APIが返す1オブジェクト分の矩形
type DetectedObject struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}
