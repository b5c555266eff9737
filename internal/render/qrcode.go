package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

// QRCodeImage returns a borderless QR code at most sizePx square, white on
// black so it reads on an LED panel. If payload is empty, it returns
// (nil, nil). Codes with more modules than sizePx come back at one pixel per
// module.
func QRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = LogoSize
	}

	code, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	code.ForegroundColor = White
	code.BackgroundColor = Black

	return code.Image(sizePx), nil
}
