package infra

// pdf.go renders purchase-order documents using go-pdf/fpdf.
// Generates an A4 document with the header data, a line-item table and the
// subtotal / descuento / impuesto / total block.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrdenPDF renders a purchase order to a PDF file under storagePath
// (created if needed) and returns the absolute path of the generated file.
func GenerateOrdenPDF(orden *model.OrdenCompra, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	titulo := orden.ID.String()
	if orden.Numero != nil && *orden.Numero != "" {
		titulo = *orden.Numero
	}
	fileName := fmt.Sprintf("orden_%s.pdf", titulo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Dulcería Lilis", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Orden de Compra %s", titulo), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	if orden.Proveedor != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Proveedor: %s (%s)", orden.Proveedor.Nombre, orden.Proveedor.RazonSocial), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Fecha: %s", orden.Fecha.Format("2006-01-02")), "", 1, "L", false, 0, "")
	if orden.FechaEntrega != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Entrega esperada: %s", orden.FechaEntrega.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Estado: %s", orden.Estado), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Line-item table ──────────────────────────────────────────────────────
	colProducto := contentW * 0.40
	colNum := contentW * 0.15

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colProducto, 6, "Producto", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colNum, 6, "Cantidad", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, "P. Unitario", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, "Descuento", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range orden.Detalles {
		nombre := l.ProductoID.String()
		if l.Producto != nil {
			nombre = fmt.Sprintf("%s — %s", l.Producto.SKU, l.Producto.Nombre)
		}
		pdf.CellFormat(colProducto, 6, nombre, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colNum, 6, l.Cantidad.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colNum, 6, l.PrecioUnitario.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colNum, 6, l.DescuentoLinea.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colNum, 6, l.SubtotalLinea.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Totals block ─────────────────────────────────────────────────────────
	labelW := contentW - colNum
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, orden.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Descuento", "", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, orden.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Impuesto", "", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 6, orden.Impuesto.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(colNum, 7, orden.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
