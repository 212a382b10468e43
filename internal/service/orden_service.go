package service

import (
	"context"
	"fmt"
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/infra"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const fechaLayout = "2006-01-02"

// OrdenService owns the purchase-order engine: every line mutation recomputes
// the line subtotal and the header aggregates inside one transaction, so the
// header totals are never stale with respect to the lines.
type OrdenService interface {
	Crear(ctx context.Context, clienteID uuid.UUID, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	AgregarLinea(ctx context.Context, ordenID uuid.UUID, req dto.LineaOrdenInput) (*dto.OrdenResponse, error)
	ActualizarLinea(ctx context.Context, ordenID, lineaID uuid.UUID, req dto.ActualizarLineaRequest) (*dto.OrdenResponse, error)
	EliminarLinea(ctx context.Context, ordenID, lineaID uuid.UUID) (*dto.OrdenResponse, error)

	RecalcularTotales(ctx context.Context, ordenID uuid.UUID) (*dto.OrdenResponse, error)
	CambiarEstado(ctx context.Context, ordenID uuid.UUID, estado model.EstadoOrden) error
	AsignarNumero(ctx context.Context, ordenID uuid.UUID) (string, error)
	RegistrarRecepcion(ctx context.Context, ordenID uuid.UUID, req dto.RegistrarRecepcionRequest) (*dto.OrdenResponse, error)
	// GenerarPDF renders the order document and returns the file path.
	GenerarPDF(ctx context.Context, ordenID uuid.UUID) (string, error)
}

type ordenService struct {
	repo          repository.OrdenRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	dispatcher    *worker.Dispatcher
	tasaImpuesto  decimal.Decimal
	anioNumero    int
	pdfPath       string
}

func NewOrdenService(
	repo repository.OrdenRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	dispatcher *worker.Dispatcher,
	tasaImpuesto decimal.Decimal,
	anioNumero int,
	pdfPath string,
) OrdenService {
	return &ordenService{
		repo:          repo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		dispatcher:    dispatcher,
		tasaImpuesto:  tasaImpuesto,
		anioNumero:    anioNumero,
		pdfPath:       pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Derived-field arithmetic ─────────────────────────────────────────────────
// All fixed-point decimal; floats never enter the computation.

// SubtotalLinea computes cantidad × precio_unitario − descuento_linea,
// rounded to 2 decimal places.
func SubtotalLinea(cantidad, precioUnitario, descuentoLinea decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(precioUnitario).Sub(descuentoLinea).Round(2)
}

// TotalesOrden computes the header aggregates from a line-subtotal sum:
// impuesto = (subtotal − descuento) × tasa rounded to 2 places, and
// total = (subtotal − descuento) + impuesto.
func TotalesOrden(subtotal, descuento, tasa decimal.Decimal) (impuesto, total decimal.Decimal) {
	base := subtotal.Sub(descuento)
	impuesto = base.Mul(tasa).Round(2)
	total = base.Add(impuesto)
	return impuesto, total
}

// ── Crear ────────────────────────────────────────────────────────────────────
// Two-phase save: the header row is written first so it has a stable identity,
// the lines are written against it, and the aggregates are then computed over
// the persisted lines and written back, all inside one transaction.

func (s *ordenService) Crear(ctx context.Context, clienteID uuid.UUID, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, validacionf("proveedor_id inválido")
	}
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, validacionf("fecha inválida: %s", req.Fecha)
	}
	var fechaEntrega *time.Time
	if req.FechaEntrega != nil {
		fe, err := time.Parse(fechaLayout, *req.FechaEntrega)
		if err != nil {
			return nil, validacionf("fecha_entrega inválida: %s", *req.FechaEntrega)
		}
		fechaEntrega = &fe
	}
	if req.Descuento.IsNegative() {
		return nil, validacionf("descuento no puede ser negativo")
	}

	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, noEncontradof("proveedor %s", req.ProveedorID)
	}
	if !proveedor.Activo {
		return nil, validacionf("proveedor %s está inactivo", proveedor.Nombre)
	}

	// Resolve lines up front (pre-flight, outside TX)
	lineas, err := s.resolverLineas(ctx, req.Detalles)
	if err != nil {
		return nil, err
	}

	orden := model.OrdenCompra{
		ClienteID:    clienteID,
		ProveedorID:  proveedorID,
		Fecha:        fecha,
		FechaEntrega: fechaEntrega,
		Estado:       model.OrdenPendiente,
		Descuento:    req.Descuento.Round(2),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Phase 1: header row, to obtain a stable identity
		if err := s.repo.Create(ctx, tx, &orden); err != nil {
			return traducirErrorStore(err)
		}
		for i := range lineas {
			lineas[i].OrdenID = orden.ID
			if err := s.repo.CreateLinea(ctx, tx, &lineas[i]); err != nil {
				return traducirErrorStore(err)
			}
		}
		// Phase 2: aggregate persisted lines back into the header
		return s.recalcularTx(ctx, tx, orden.ID, orden.Descuento)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.ObtenerPorID(ctx, orden.ID)
}

// resolverLineas validates the inputs and builds line models with their
// derived subtotals. Nothing is written here.
func (s *ordenService) resolverLineas(ctx context.Context, inputs []dto.LineaOrdenInput) ([]model.DetalleOC, error) {
	lineas := make([]model.DetalleOC, 0, len(inputs))
	for _, in := range inputs {
		pid, err := uuid.Parse(in.ProductoID)
		if err != nil {
			return nil, validacionf("producto_id inválido: %s", in.ProductoID)
		}
		if err := validarLinea(in.Cantidad, in.PrecioUnitario, in.DescuentoLinea); err != nil {
			return nil, err
		}
		if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
			return nil, noEncontradof("producto %s", in.ProductoID)
		}
		lineas = append(lineas, model.DetalleOC{
			ProductoID:     pid,
			Cantidad:       in.Cantidad,
			PrecioUnitario: in.PrecioUnitario,
			DescuentoLinea: in.DescuentoLinea.Round(2),
			SubtotalLinea:  SubtotalLinea(in.Cantidad, in.PrecioUnitario, in.DescuentoLinea),
		})
	}
	return lineas, nil
}

func validarLinea(cantidad, precioUnitario, descuentoLinea decimal.Decimal) error {
	if cantidad.LessThan(decimal.NewFromInt(1)) {
		return validacionf("cantidad debe ser al menos 1")
	}
	if precioUnitario.IsNegative() {
		return validacionf("precio_unitario no puede ser negativo")
	}
	if descuentoLinea.IsNegative() {
		return validacionf("descuento_linea no puede ser negativo")
	}
	return nil
}

// ── Line mutations (push model) ──────────────────────────────────────────────
// Each mutation shares one transaction with the header recompute, so two
// concurrent line writes cannot leave the header with lost updates.

func (s *ordenService) AgregarLinea(ctx context.Context, ordenID uuid.UUID, req dto.LineaOrdenInput) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return nil, noEncontradof("orden %s", ordenID)
	}
	lineas, err := s.resolverLineas(ctx, []dto.LineaOrdenInput{req})
	if err != nil {
		return nil, err
	}
	linea := lineas[0]
	linea.OrdenID = orden.ID

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateLinea(ctx, tx, &linea); err != nil {
			return traducirErrorStore(err)
		}
		return s.recalcularTx(ctx, tx, orden.ID, orden.Descuento)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, orden.ID)
}

func (s *ordenService) ActualizarLinea(ctx context.Context, ordenID, lineaID uuid.UUID, req dto.ActualizarLineaRequest) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return nil, noEncontradof("orden %s", ordenID)
	}
	linea, err := s.repo.FindLineaByID(ctx, lineaID)
	if err != nil || linea.OrdenID != ordenID {
		return nil, noEncontradof("línea %s en orden %s", lineaID, ordenID)
	}

	if req.Cantidad != nil {
		linea.Cantidad = *req.Cantidad
	}
	if req.PrecioUnitario != nil {
		linea.PrecioUnitario = *req.PrecioUnitario
	}
	if req.DescuentoLinea != nil {
		linea.DescuentoLinea = req.DescuentoLinea.Round(2)
	}
	if err := validarLinea(linea.Cantidad, linea.PrecioUnitario, linea.DescuentoLinea); err != nil {
		return nil, err
	}
	linea.SubtotalLinea = SubtotalLinea(linea.Cantidad, linea.PrecioUnitario, linea.DescuentoLinea)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateLinea(ctx, tx, linea); err != nil {
			return traducirErrorStore(err)
		}
		return s.recalcularTx(ctx, tx, ordenID, orden.Descuento)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, ordenID)
}

func (s *ordenService) EliminarLinea(ctx context.Context, ordenID, lineaID uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return nil, noEncontradof("orden %s", ordenID)
	}
	linea, err := s.repo.FindLineaByID(ctx, lineaID)
	if err != nil || linea.OrdenID != ordenID {
		return nil, noEncontradof("línea %s en orden %s", lineaID, ordenID)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteLinea(ctx, tx, lineaID); err != nil {
			return traducirErrorStore(err)
		}
		return s.recalcularTx(ctx, tx, ordenID, orden.Descuento)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, ordenID)
}

// recalcularTx re-aggregates the order's persisted lines into the header.
// Deterministic and idempotent: running it twice with the same lines writes
// the same subtotal/impuesto/total.
func (s *ordenService) recalcularTx(ctx context.Context, tx *gorm.DB, ordenID uuid.UUID, descuento decimal.Decimal) error {
	subtotal, err := s.repo.SumSubtotalLineas(ctx, tx, ordenID)
	if err != nil {
		return err
	}
	impuesto, total := TotalesOrden(subtotal, descuento, s.tasaImpuesto)
	return s.repo.UpdateTotales(ctx, tx, ordenID, subtotal, impuesto, total)
}

// RecalcularTotales is the explicit (pull) entry point, kept for callers that
// created the header before its lines.
func (s *ordenService) RecalcularTotales(ctx context.Context, ordenID uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return nil, noEncontradof("orden %s", ordenID)
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.recalcularTx(ctx, tx, ordenID, orden.Descuento)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, ordenID)
}

// ── Estado / numeración / recepción ──────────────────────────────────────────

// CambiarEstado sets any state on any order; no transition graph is enforced.
// Moving to enviada enqueues the supplier notification email.
func (s *ordenService) CambiarEstado(ctx context.Context, ordenID uuid.UUID, estado model.EstadoOrden) error {
	if !estado.Valido() {
		return validacionf("estado desconocido: %s", estado)
	}
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return noEncontradof("orden %s", ordenID)
	}
	if err := s.repo.UpdateEstado(ctx, ordenID, estado); err != nil {
		return traducirErrorStore(err)
	}

	if estado == model.OrdenEnviada && s.dispatcher != nil && orden.Proveedor != nil && orden.Proveedor.Email != nil {
		numero := ""
		if orden.Numero != nil {
			numero = *orden.Numero
		}
		// Best effort: the notification goes out with or without the document.
		pdfPath, _ := infra.GenerateOrdenPDF(orden, s.pdfPath)
		_ = s.dispatcher.EnqueueNotificacionOrden(ctx, worker.NotificacionOrdenPayload{
			OrdenID:        orden.ID.String(),
			Numero:         numero,
			ProveedorEmail: *orden.Proveedor.Email,
			Proveedor:      orden.Proveedor.Nombre,
			Total:          orden.Total.StringFixed(2),
			PDFPath:        pdfPath,
		})
	}
	return nil
}

// AsignarNumero derives the order number from the configured year and the
// order's numeric identity. Idempotent: an existing number is never replaced.
func (s *ordenService) AsignarNumero(ctx context.Context, ordenID uuid.UUID) (string, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return "", noEncontradof("orden %s", ordenID)
	}
	if orden.Numero != nil && *orden.Numero != "" {
		return *orden.Numero, nil
	}
	anio := s.anioNumero
	if anio == 0 {
		anio = orden.Fecha.Year()
	}
	numero := NumeroOrden(anio, orden.Secuencia)
	if err := s.repo.UpdateNumero(ctx, ordenID, numero); err != nil {
		return "", traducirErrorStore(err)
	}
	return numero, nil
}

// NumeroOrden formats an order number: prefix, year, zero-padded sequence.
func NumeroOrden(anio int, secuencia int64) string {
	return fmt.Sprintf("OC-%d-%04d", anio, secuencia)
}

// RegistrarRecepcion books received quantities on the order's lines and
// derives the resulting state: completada when every line is fully received,
// parcial when anything arrived.
func (s *ordenService) RegistrarRecepcion(ctx context.Context, ordenID uuid.UUID, req dto.RegistrarRecepcionRequest) (*dto.OrdenResponse, error) {
	if _, err := s.repo.FindByID(ctx, ordenID); err != nil {
		return nil, noEncontradof("orden %s", ordenID)
	}
	fecha := time.Now()
	if req.Fecha != "" {
		f, err := time.Parse(fechaLayout, req.Fecha)
		if err != nil {
			return nil, validacionf("fecha inválida: %s", req.Fecha)
		}
		fecha = f
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, in := range req.Lineas {
			lid, err := uuid.Parse(in.DetalleID)
			if err != nil {
				return validacionf("detalle_id inválido: %s", in.DetalleID)
			}
			if in.CantidadRecibida.IsNegative() {
				return validacionf("cantidad_recibida no puede ser negativa")
			}
			linea, err := s.repo.FindLineaByID(ctx, lid)
			if err != nil || linea.OrdenID != ordenID {
				return noEncontradof("línea %s en orden %s", in.DetalleID, ordenID)
			}
			linea.CantidadRecibida = in.CantidadRecibida
			linea.FechaRecepcion = &fecha
			if err := s.repo.UpdateLinea(ctx, tx, linea); err != nil {
				return traducirErrorStore(err)
			}
		}

		lineas, err := s.repo.ListLineas(ctx, tx, ordenID)
		if err != nil {
			return err
		}
		estado := estadoPorRecepcion(lineas)
		return s.repo.UpdateEstado(ctx, ordenID, estado)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, ordenID)
}

func estadoPorRecepcion(lineas []model.DetalleOC) model.EstadoOrden {
	if len(lineas) == 0 {
		return model.OrdenPendiente
	}
	completas := 0
	algoRecibido := false
	for _, l := range lineas {
		if l.CantidadRecibida.GreaterThanOrEqual(l.Cantidad) {
			completas++
		}
		if l.CantidadRecibida.IsPositive() {
			algoRecibido = true
		}
	}
	switch {
	case completas == len(lineas):
		return model.OrdenCompletada
	case algoRecibido:
		return model.OrdenParcial
	default:
		return model.OrdenConfirmada
	}
}

// ── Reads / borrado ──────────────────────────────────────────────────────────

func (s *ordenService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontradof("orden %s", id)
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ordenes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		data = append(data, *ordenToResponse(&ordenes[i]))
	}
	return &dto.OrdenListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ordenService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return noEncontradof("orden %s", id)
	}
	return traducirErrorStore(s.repo.Eliminar(ctx, id))
}

func (s *ordenService) GenerarPDF(ctx context.Context, ordenID uuid.UUID) (string, error) {
	orden, err := s.repo.FindByID(ctx, ordenID)
	if err != nil {
		return "", noEncontradof("orden %s", ordenID)
	}
	return infra.GenerateOrdenPDF(orden, s.pdfPath)
}

func ordenToResponse(o *model.OrdenCompra) *dto.OrdenResponse {
	detalles := make([]dto.LineaOrdenResponse, 0, len(o.Detalles))
	for _, l := range o.Detalles {
		nombre := ""
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		var fechaRecepcion *string
		if l.FechaRecepcion != nil {
			f := l.FechaRecepcion.Format(fechaLayout)
			fechaRecepcion = &f
		}
		detalles = append(detalles, dto.LineaOrdenResponse{
			ID:               l.ID.String(),
			ProductoID:       l.ProductoID.String(),
			Producto:         nombre,
			Cantidad:         l.Cantidad,
			PrecioUnitario:   l.PrecioUnitario,
			DescuentoLinea:   l.DescuentoLinea,
			SubtotalLinea:    l.SubtotalLinea,
			CantidadRecibida: l.CantidadRecibida,
			FechaRecepcion:   fechaRecepcion,
		})
	}

	resp := &dto.OrdenResponse{
		ID:          o.ID.String(),
		Numero:      o.Numero,
		ClienteID:   o.ClienteID.String(),
		ProveedorID: o.ProveedorID.String(),
		Fecha:       o.Fecha.Format(fechaLayout),
		Estado:      string(o.Estado),
		Subtotal:    o.Subtotal,
		Descuento:   o.Descuento,
		Impuesto:    o.Impuesto,
		Total:       o.Total,
		Detalles:    detalles,
	}
	if o.FechaEntrega != nil {
		f := o.FechaEntrega.Format(fechaLayout)
		resp.FechaEntrega = &f
	}
	if o.Cliente != nil {
		resp.Cliente = o.Cliente.Nombre
	}
	if o.Proveedor != nil {
		resp.Proveedor = o.Proveedor.Nombre
	}
	return resp
}
