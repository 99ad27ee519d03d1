package capture

import (
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"

	"github.com/lecturevod/slidedeck/errors"
)

// slideWidth and slideHeight give a 16:9 deck at a common presentation
// size (10in x 5.625in), per §4.4.
const (
	slideWidth  = 10 * measurement.Inch
	slideHeight = 5.625 * measurement.Inch
)

// AssemblePPTX builds a deck with one blank-layout, full-bleed-image slide
// per captured still, in the order given.
func AssemblePPTX(slides []CapturedSlide, outPath string) error {
	ppt := presentation.New()
	defer ppt.Close()

	for _, s := range slides {
		img, err := common.ImageFromFile(s.ImagePath)
		if err != nil {
			return errors.New(errors.KindInput, "unable to read captured slide image", err)
		}
		imgRef, err := ppt.AddImage(img)
		if err != nil {
			return errors.New(errors.KindLogic, "unable to embed slide image", err)
		}

		slide := ppt.AddSlide()
		pic := slide.AddImage(imgRef)
		pic.Properties().SetPosition(0, 0)
		pic.Properties().SetSize(slideWidth, slideHeight)
	}

	if err := ppt.SaveToFile(outPath); err != nil {
		return errors.New(errors.KindEnvironment, "unable to write pptx file", err)
	}
	return nil
}
