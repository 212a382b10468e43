package tests

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/dto"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/model"
	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errNotFound = gorm.ErrRecordNotFound

func uuidNuevo() uuid.UUID { return uuid.New() }

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// ── Producto stub ─────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existente := range r.productos {
		if existente.SKU == p.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *stubProductoRepo) Listar(_ context.Context, categoriaID *uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if categoriaID == nil || p.CategoriaID == *categoriaID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return errNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) ListarBajoReorden(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.PuntoReorden != nil && p.StockMinimo.LessThanOrEqual(*p.PuntoReorden) {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func seedProducto(r *stubProductoRepo, sku, nombre string) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		SKU:         sku,
		Nombre:      nombre,
		CategoriaID: uuid.New(),
	}
	r.productos[p.ID] = p
	return p
}

// ── Proveedor stub ────────────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
	vinculos    map[uuid.UUID]*model.ProductoProveedor
	conOrdenes  map[uuid.UUID]bool
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{
		proveedores: make(map[uuid.UUID]*model.Proveedor),
		vinculos:    make(map[uuid.UUID]*model.ProductoProveedor),
		conOrdenes:  make(map[uuid.UUID]bool),
	}
}

func (r *stubProveedorRepo) Crear(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.RUT != nil {
		for _, existente := range r.proveedores {
			if existente.RUT != nil && *existente.RUT == *p.RUT {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) Listar(_ context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if incluirInactivos || p.Activo {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubProveedorRepo) Actualizar(_ context.Context, p *model.Proveedor) error {
	if _, ok := r.proveedores[p.ID]; !ok {
		return errNotFound
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.proveedores[id]
	if !ok {
		return errNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProveedorRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	for vid, v := range r.vinculos {
		if v.ProveedorID == id {
			delete(r.vinculos, vid)
		}
	}
	delete(r.proveedores, id)
	return nil
}

func (r *stubProveedorRepo) TieneOrdenes(_ context.Context, id uuid.UUID) (bool, error) {
	return r.conOrdenes[id], nil
}

func (r *stubProveedorRepo) CrearVinculo(_ context.Context, v *model.ProductoProveedor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for _, existente := range r.vinculos {
		if existente.ProductoID == v.ProductoID && existente.ProveedorID == v.ProveedorID {
			return gorm.ErrDuplicatedKey
		}
	}
	if v.Preferido {
		for _, existente := range r.vinculos {
			if existente.ProductoID == v.ProductoID {
				existente.Preferido = false
			}
		}
	}
	r.vinculos[v.ID] = v
	return nil
}

func (r *stubProveedorRepo) ListarVinculos(_ context.Context, proveedorID uuid.UUID) ([]model.ProductoProveedor, error) {
	var out []model.ProductoProveedor
	for _, v := range r.vinculos {
		if v.ProveedorID == proveedorID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) ListarVinculosPorProducto(_ context.Context, productoID uuid.UUID) ([]model.ProductoProveedor, error) {
	var out []model.ProductoProveedor
	for _, v := range r.vinculos {
		if v.ProductoID == productoID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) EliminarVinculo(_ context.Context, id uuid.UUID) error {
	delete(r.vinculos, id)
	return nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

func seedProveedor(r *stubProveedorRepo, nombre string) *model.Proveedor {
	p := &model.Proveedor{
		ID:          uuid.New(),
		Nombre:      nombre,
		RazonSocial: nombre + " S.A.",
		Activo:      true,
	}
	r.proveedores[p.ID] = p
	return p
}

// ── Orden stub ────────────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes   map[uuid.UUID]*model.OrdenCompra
	lineas    map[uuid.UUID]*model.DetalleOC
	secuencia int64
	lineaSeq  int64
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{
		ordenes: make(map[uuid.UUID]*model.OrdenCompra),
		lineas:  make(map[uuid.UUID]*model.DetalleOC),
	}
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

func (r *stubOrdenRepo) Create(_ context.Context, _ *gorm.DB, o *model.OrdenCompra) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.secuencia++
	o.Secuencia = r.secuencia
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, errNotFound
	}
	copia := *o
	copia.Detalles = r.lineasDe(id)
	return &copia, nil
}

func (r *stubOrdenRepo) List(_ context.Context, filter dto.OrdenFilter) ([]model.OrdenCompra, int64, error) {
	var out []model.OrdenCompra
	for id, o := range r.ordenes {
		if filter.Estado != "" && filter.Estado != "all" && string(o.Estado) != filter.Estado {
			continue
		}
		copia := *o
		copia.Detalles = r.lineasDe(id)
		out = append(out, copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Secuencia > out[j].Secuencia })
	return out, int64(len(out)), nil
}

func (r *stubOrdenRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	for lid, l := range r.lineas {
		if l.OrdenID == id {
			delete(r.lineas, lid)
		}
	}
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenRepo) CreateLinea(_ context.Context, _ *gorm.DB, l *model.DetalleOC) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lineaSeq++
	l.CreatedAt = time.Unix(r.lineaSeq, 0)
	r.lineas[l.ID] = l
	return nil
}

func (r *stubOrdenRepo) FindLineaByID(_ context.Context, id uuid.UUID) (*model.DetalleOC, error) {
	l, ok := r.lineas[id]
	if !ok {
		return nil, errNotFound
	}
	copia := *l
	return &copia, nil
}

func (r *stubOrdenRepo) UpdateLinea(_ context.Context, _ *gorm.DB, l *model.DetalleOC) error {
	if _, ok := r.lineas[l.ID]; !ok {
		return errNotFound
	}
	copia := *l
	r.lineas[l.ID] = &copia
	return nil
}

func (r *stubOrdenRepo) DeleteLinea(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.lineas, id)
	return nil
}

func (r *stubOrdenRepo) ListLineas(_ context.Context, _ *gorm.DB, ordenID uuid.UUID) ([]model.DetalleOC, error) {
	return r.lineasDe(ordenID), nil
}

func (r *stubOrdenRepo) SumSubtotalLineas(_ context.Context, _ *gorm.DB, ordenID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range r.lineas {
		if l.OrdenID == ordenID {
			sum = sum.Add(l.SubtotalLinea)
		}
	}
	return sum, nil
}

func (r *stubOrdenRepo) UpdateTotales(_ context.Context, _ *gorm.DB, ordenID uuid.UUID, subtotal, impuesto, total decimal.Decimal) error {
	o, ok := r.ordenes[ordenID]
	if !ok {
		return errNotFound
	}
	o.Subtotal = subtotal
	o.Impuesto = impuesto
	o.Total = total
	return nil
}

func (r *stubOrdenRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado model.EstadoOrden) error {
	o, ok := r.ordenes[id]
	if !ok {
		return errNotFound
	}
	o.Estado = estado
	return nil
}

func (r *stubOrdenRepo) UpdateNumero(_ context.Context, id uuid.UUID, numero string) error {
	o, ok := r.ordenes[id]
	if !ok {
		return errNotFound
	}
	for _, otra := range r.ordenes {
		if otra.Numero != nil && *otra.Numero == numero && otra.ID != id {
			return gorm.ErrDuplicatedKey
		}
	}
	o.Numero = &numero
	return nil
}

func (r *stubOrdenRepo) lineasDe(ordenID uuid.UUID) []model.DetalleOC {
	var out []model.DetalleOC
	for _, l := range r.lineas {
		if l.OrdenID == ordenID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

// ── Usuario / Rol stubs ───────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) CrearConPerfil(_ context.Context, u *model.Usuario, p *model.PerfilUsuario) error {
	for _, existente := range r.usuarios {
		if existente.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	p.ID = uuid.New()
	p.UsuarioID = u.ID
	u.Perfil = p
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) Listar(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return errNotFound
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) UpdatePerfil(_ context.Context, p *model.PerfilUsuario) error {
	u, ok := r.usuarios[p.UsuarioID]
	if !ok {
		return errNotFound
	}
	u.Perfil = p
	return nil
}

func (r *stubUsuarioRepo) TocarUltimoAcceso(_ context.Context, usuarioID uuid.UUID, t time.Time) error {
	u, ok := r.usuarios[usuarioID]
	if !ok {
		return errNotFound
	}
	if u.Perfil != nil {
		u.Perfil.UltimoAcceso = &t
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

type stubRolRepo struct {
	roles map[model.NombreRol]*model.Rol
	// usuarios lets Eliminar null profile references the way the real
	// repository does.
	usuarios *stubUsuarioRepo
}

func newStubRolRepo(usuarios *stubUsuarioRepo) *stubRolRepo {
	return &stubRolRepo{roles: make(map[model.NombreRol]*model.Rol), usuarios: usuarios}
}

func (r *stubRolRepo) GetOrCreate(_ context.Context, nombre model.NombreRol) (*model.Rol, error) {
	if !nombre.Valido() {
		return nil, errors.New("rol desconocido")
	}
	if rol, ok := r.roles[nombre]; ok {
		return rol, nil
	}
	rol := &model.Rol{ID: uuid.New(), Nombre: nombre}
	r.roles[nombre] = rol
	return rol, nil
}

func (r *stubRolRepo) FindByNombre(_ context.Context, nombre model.NombreRol) (*model.Rol, error) {
	rol, ok := r.roles[nombre]
	if !ok {
		return nil, errNotFound
	}
	return rol, nil
}

func (r *stubRolRepo) Listar(_ context.Context) ([]model.Rol, error) {
	var out []model.Rol
	for _, rol := range r.roles {
		out = append(out, *rol)
	}
	return out, nil
}

func (r *stubRolRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	for nombre, rol := range r.roles {
		if rol.ID == id {
			delete(r.roles, nombre)
		}
	}
	if r.usuarios != nil {
		for _, u := range r.usuarios.usuarios {
			if u.Perfil != nil && u.Perfil.RolID != nil && *u.Perfil.RolID == id {
				u.Perfil.RolID = nil
				u.Perfil.Rol = nil
			}
		}
	}
	return nil
}

var _ repository.RolRepository = (*stubRolRepo)(nil)

// ── Categoria / HistorialCosto stubs ──────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	productos  *stubProductoRepo
}

func newStubCategoriaRepo(productos *stubProductoRepo) *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria), productos: productos}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	for _, existente := range r.categorias {
		if existente.Nombre == c.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	if _, ok := r.categorias[c.ID]; !ok {
		return errNotFound
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	if r.productos != nil {
		for pid, p := range r.productos.productos {
			if p.CategoriaID == id {
				delete(r.productos.productos, pid)
			}
		}
	}
	delete(r.categorias, id)
	return nil
}

func (r *stubCategoriaRepo) ContarProductos(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	if r.productos != nil {
		for _, p := range r.productos.productos {
			if p.CategoriaID == id {
				n++
			}
		}
	}
	return n, nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubHistorialCostoRepo struct {
	entradas []model.HistorialCosto
}

func (r *stubHistorialCostoRepo) Crear(_ context.Context, h *model.HistorialCosto) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.entradas = append(r.entradas, *h)
	return nil
}

func (r *stubHistorialCostoRepo) ListarPorProducto(_ context.Context, productoID uuid.UUID) ([]model.HistorialCosto, error) {
	var out []model.HistorialCosto
	for _, h := range r.entradas {
		if h.ProductoID == productoID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.HistorialCostoRepository = (*stubHistorialCostoRepo)(nil)
