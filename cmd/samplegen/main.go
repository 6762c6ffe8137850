package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"
)

// samplegen writes a QR code framed by letterbox or pillarbox bars, useful
// for trying the letterbox command on a known layout.
func main() {
	outPtr := flag.String("out", "sample.png", "Output image path")
	textPtr := flag.String("text", "https://example.com/letterbox", "QR code content")
	sizePtr := flag.Int("size", 256, "QR code side in pixels")
	widthPtr := flag.Int("width", 640, "Canvas width")
	heightPtr := flag.Int("height", 360, "Canvas height")
	blurPtr := flag.Float64("blur", 0, "Fill bars with the blurred, stretched content (sigma); 0 for solid bars")
	grayPtr := flag.Int("gray", 0, "Solid bar gray level (0-255)")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	img, content, err := generate(*textPtr, *sizePtr, *widthPtr, *heightPtr, *blurPtr, uint8(*grayPtr))
	if err != nil {
		logrus.Fatalf("generate: %v", err)
	}
	if err := imaging.Save(img, *outPtr); err != nil {
		logrus.Fatalf("save: %v", err)
	}

	b := img.Bounds()
	logrus.Infof("wrote %s (%dx%d), content at %v", *outPtr, b.Dx(), b.Dy(), content)
}

// generate returns the sample and the rectangle the QR code occupies.
func generate(text string, size, width, height int, blur float64, gray uint8) (image.Image, image.Rectangle, error) {
	if size < 21 || size > width || size > height {
		return nil, image.Rectangle{}, fmt.Errorf("qr size %d must be between 21 and the canvas size %dx%d", size, width, height)
	}

	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	q.DisableBorder = true
	content := q.Image(size)
	if content.Bounds().Dx() > width || content.Bounds().Dy() > height {
		return nil, image.Rectangle{}, fmt.Errorf("qr code needs %v, canvas is %dx%d", content.Bounds().Size(), width, height)
	}

	var canvas *image.NRGBA
	if blur > 0 {
		canvas = imaging.Blur(imaging.Resize(content, width, height, imaging.Linear), blur)
	} else {
		canvas = imaging.New(width, height, color.Gray{Y: gray})
	}

	pos := image.Pt((width-content.Bounds().Dx())/2, (height-content.Bounds().Dy())/2)
	return imaging.Paste(canvas, content, pos), content.Bounds().Add(pos), nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
}
