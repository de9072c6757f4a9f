package assets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	custom_error "github.com/Josue-Alexander/gestionitp/pkg/errors"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrAssetNotFound = errors.New("activo no encontrado")

type AssetRepository interface {
	ListAssets(includeRetired bool) ([]models.Asset, error)
	GetAsset(id int) (*models.Asset, error)
	GetAssetByQR(qrID string) (*models.Asset, error)
	PersistAsset(req AssetRequest, qrID string) (*models.Asset, error)
	UpdateAsset(id int, req AssetRequest) error
	UpdateAssetStatus(id int, estado string) error
}

type assetRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) AssetRepository {
	return &assetRepository{r: r}
}

func (ar *assetRepository) baseSelect() *goqu.SelectDataset {
	return ar.r.GoquDBWrapper.
		Select(
			goqu.I("a.id_objeto"),
			goqu.I("a.nombre"),
			goqu.I("a.nombre_generico"),
			goqu.I("a.num_inventario"),
			goqu.I("a.marca"),
			goqu.I("a.modelo"),
			goqu.I("a.no_serie"),
			goqu.I("a.estado"),
			goqu.I("a.observaciones"),
			goqu.I("a.descripcion_adquisicion"),
			goqu.I("a.imagen_objeto"),
			goqu.I("a.costo_adquisicion"),
			goqu.I("a.qr_id"),
			goqu.I("a.id_departamento"),
			goqu.I("a.id_categoria"),
			goqu.I("a.id_ubicacion"),
			goqu.I("a.fecha_registro"),
			goqu.I("d.nombre").As("nombre_departamento"),
			goqu.I("c.nombre_categoria").As("nombre_categoria"),
			goqu.I("u.nombre_area").As("nombre_ubicacion"),
		).
		From(goqu.T("activos").As("a")).
		LeftJoin(goqu.T("departamentos").As("d"), goqu.On(goqu.Ex{"a.id_departamento": goqu.I("d.id_departamento")})).
		LeftJoin(goqu.T("categorias").As("c"), goqu.On(goqu.Ex{"a.id_categoria": goqu.I("c.id_categoria")})).
		LeftJoin(goqu.T("ubicaciones").As("u"), goqu.On(goqu.Ex{"a.id_ubicacion": goqu.I("u.id_ubicacion")}))
}

func (ar *assetRepository) ListAssets(includeRetired bool) ([]models.Asset, error) {
	query := ar.baseSelect().Order(goqu.I("a.id_objeto").Asc())
	if !includeRetired {
		query = query.Where(goqu.I("a.estado").Neq(models.EstadoDeBaja))
	}

	var assets []models.Asset
	if err := query.Executor().ScanStructs(&assets); err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}

	return assets, nil
}

func (ar *assetRepository) GetAsset(id int) (*models.Asset, error) {
	return ar.getOne(goqu.Ex{"a.id_objeto": id})
}

func (ar *assetRepository) GetAssetByQR(qrID string) (*models.Asset, error) {
	return ar.getOne(goqu.Ex{"a.qr_id": qrID})
}

func (ar *assetRepository) getOne(where goqu.Ex) (*models.Asset, error) {
	var asset models.Asset

	found, err := ar.baseSelect().Where(where).Executor().ScanStruct(&asset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}
	if !found {
		return nil, ErrAssetNotFound
	}

	return &asset, nil
}

func (ar *assetRepository) PersistAsset(req AssetRequest, qrID string) (*models.Asset, error) {
	query := ar.r.GoquDBWrapper.Insert("activos").
		Rows(goqu.Record{
			"nombre":                  req.Nombre,
			"nombre_generico":         req.NombreGenerico,
			"num_inventario":          req.NumInventario,
			"marca":                   req.Marca,
			"modelo":                  req.Modelo,
			"no_serie":                req.NoSerie,
			"estado":                  req.Estado,
			"observaciones":           req.Observaciones,
			"descripcion_adquisicion": req.DescAdquisicion,
			"imagen_objeto":           req.ImagenObjeto,
			"costo_adquisicion":       req.CostoAdquisicion,
			"qr_id":                   qrID,
			"id_departamento":         req.DepartamentoID,
			"id_categoria":            req.CategoriaID,
			"id_ubicacion":            req.UbicacionID,
		}).
		Returning("id_objeto")

	asset := models.Asset{
		Nombre:           req.Nombre,
		NombreGenerico:   req.NombreGenerico,
		NumInventario:    req.NumInventario,
		Marca:            req.Marca,
		Modelo:           req.Modelo,
		NoSerie:          req.NoSerie,
		Estado:           req.Estado,
		Observaciones:    req.Observaciones,
		DescAdquisicion:  req.DescAdquisicion,
		ImagenObjeto:     req.ImagenObjeto,
		CostoAdquisicion: req.CostoAdquisicion,
		QRID:             qrID,
		DepartamentoID:   req.DepartamentoID,
		CategoriaID:      req.CategoriaID,
		UbicacionID:      req.UbicacionID,
	}

	if _, err := query.Executor().ScanVal(&asset.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return nil, custom_error.WrapDBError("Número de inventario duplicado", string(pqErr.Code))
			}
		}
		return nil, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return &asset, nil
}

func (ar *assetRepository) UpdateAsset(id int, req AssetRequest) error {
	query := ar.r.GoquDBWrapper.
		Update("activos").
		Set(goqu.Record{
			"nombre":                  req.Nombre,
			"nombre_generico":         req.NombreGenerico,
			"num_inventario":          req.NumInventario,
			"marca":                   req.Marca,
			"modelo":                  req.Modelo,
			"no_serie":                req.NoSerie,
			"estado":                  req.Estado,
			"observaciones":           req.Observaciones,
			"descripcion_adquisicion": req.DescAdquisicion,
			"imagen_objeto":           req.ImagenObjeto,
			"costo_adquisicion":       req.CostoAdquisicion,
			"id_departamento":         req.DepartamentoID,
			"id_categoria":            req.CategoriaID,
			"id_ubicacion":            req.UbicacionID,
		}).
		Where(goqu.Ex{"id_objeto": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return custom_error.WrapDBError("Número de inventario duplicado", string(pqErr.Code))
			}
		}
		return fmt.Errorf("failed to update asset %d: %w", id, err)
	}

	return requireRowsAffected(result, ErrAssetNotFound)
}

func (ar *assetRepository) UpdateAssetStatus(id int, estado string) error {
	query := ar.r.GoquDBWrapper.
		Update("activos").
		Set(goqu.Record{"estado": estado}).
		Where(goqu.Ex{"id_objeto": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update asset status %d: %w", id, err)
	}

	return requireRowsAffected(result, ErrAssetNotFound)
}

func requireRowsAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
