package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel adds text to an image at the specified position
func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// addLabelBold adds bold text for field labels
func addLabelBold(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{30, 30, 30, 255}
	face := inconsolata.Bold8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// GenerateAcknowledgementQR godoc
// @Summary      Generate acknowledgement QR slip as JPEG
// @Description  QR encodes the acknowledgement reference for counter
//               verification; the slip carries the key fields as text below
// @Tags         enquiry
// @Param        ack  path  string  true  "Acknowledgement number"
// @Success      200  {file}    file  "JPEG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/enquiry-reports/{ack}/qr [get]
func GenerateAcknowledgementQR(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ackNumber := c.Param("ack")
		if ackNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Acknowledgement number is required"})
			return
		}

		var applicationID, formType string
		var createdAt time.Time
		err := db.QueryRow(`
			SELECT application_id, form_type, created_at
			FROM enquiry_reports
			WHERE acknowledgement_number = $1`,
			ackNumber,
		).Scan(&applicationID, &formType, &createdAt)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Acknowledgement not found"})
				return
			}
			log.Printf("Error fetching acknowledgement %s: %v", ackNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch acknowledgement"})
			return
		}

		qrData := struct {
			ApplicationID         string `json:"application_id"`
			AcknowledgementNumber string `json:"acknowledgement_number"`
			FormType              string `json:"form_type"`
			IsValid               bool   `json:"is_valid"`
		}{
			ApplicationID:         applicationID,
			AcknowledgementNumber: ackNumber,
			FormType:              formType,
			IsValid:               true,
		}

		jsonData, err := json.Marshal(qrData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal acknowledgement data"})
			return
		}

		qr, err := qrcode.New(string(jsonData), qrcode.Medium)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}

		qrImg := qr.Image(512)

		qrSize := qrImg.Bounds().Dy()
		padding := 30
		lineHeight := 28
		textAreaHeight := 4*lineHeight + padding
		totalHeight := qrSize + padding + textAreaHeight

		combinedImg := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
		draw.Draw(combinedImg, combinedImg.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

		qrRect := image.Rect(0, 0, qrSize, qrSize)
		draw.Draw(combinedImg, qrRect, qrImg, image.Point{}, draw.Src)

		separatorY := qrSize + padding/2
		for x := 0; x < qrSize; x++ {
			combinedImg.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
		}

		startY := qrSize + padding + lineHeight
		xPos := 20

		addLabelBold(combinedImg, xPos, startY, "Ack No:")
		addLabel(combinedImg, xPos+130, startY, ackNumber)

		addLabelBold(combinedImg, xPos, startY+lineHeight, "Application:")
		addLabel(combinedImg, xPos+130, startY+lineHeight, applicationID)

		addLabelBold(combinedImg, xPos, startY+2*lineHeight, "Form Type:")
		addLabel(combinedImg, xPos+130, startY+2*lineHeight, formType)

		addLabelBold(combinedImg, xPos, startY+3*lineHeight, "Date:")
		addLabel(combinedImg, xPos+130, startY+3*lineHeight, createdAt.Format("2006-01-02"))

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, combinedImg, nil); err != nil {
			c.String(http.StatusInternalServerError, "JPEG encoding failed")
			return
		}

		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}
