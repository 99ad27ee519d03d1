package funnel

import "time"

// BestShot is the single sharpest sampled frame within one physical scene,
// plus that scene's time bounds (§3). L1+L2 emit these as a lazy, ordered
// sequence; L3 consumes them one at a time.
type BestShot struct {
	Timestamp  time.Duration
	Sharpness  float64
	SceneStart time.Duration
	SceneEnd   time.Duration
}

// SlideTimestamp is a BestShot that survived L3's empty-OCR and duplicate-
// text checks; these are what Capture turns into still images.
type SlideTimestamp struct {
	Timestamp time.Duration
	OCRText   string
}
