package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/product-registry/internal/domain"
	"github.com/DRSN-tech/product-registry/internal/usecase"
	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const (
	defaultEventsLimit = 100
	maxEventsLimit     = 1000
)

type RegistryHandler struct {
	registryUsecase usecase.RegistryUC
	condition       usecase.ExternalCondition
	logger          logger.Logger
}

func NewRegistryHandler(registryUsecase usecase.RegistryUC, condition usecase.ExternalCondition, logger logger.Logger) *RegistryHandler {
	return &RegistryHandler{registryUsecase: registryUsecase, condition: condition, logger: logger}
}

type CreateProductRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type SellProductRequest struct {
	Buyer string `json:"buyer"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type VerifyConditionRequest struct {
	Param int64 `json:"param"`
}

type ProductResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	CurrentOwner string `json:"current_owner"`
	State        string `json:"state"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type VerifyConditionResponse struct {
	Verified bool `json:"verified"`
}

// createProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает товар под опекой администратора реестра
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			X-Caller-Address	header		string					true	"Адрес вызывающего"
//	@Param			request				body		CreateProductRequest	true	"Товар"
//	@Success		201					{object}	ProductResponse
//	@Failure		400					{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		403					{object}	ErrorResponse	"Вызывающий не администратор"
//	@Failure		409					{object}	ErrorResponse	"Товар уже существует"
//	@Router			/products [post]
func (h *RegistryHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	caller, err := parseCaller(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	var req CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	ucReq := usecase.NewCreateProductReq(caller, req.ID, req.Name, price)
	if err := h.registryUsecase.CreateProduct(r.Context(), ucReq); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.registryUsecase.GetProduct(r.Context(), req.ID)
	if err != nil {
		h.logger.Errorf(err, "product %d vanished after creation", req.ID)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// sellProduct
//
//	@Summary		Продажа товара
//	@Description	Администратор передаёт товар покупателю
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			X-Caller-Address	header		string				true	"Адрес вызывающего"
//	@Param			id					path		int					true	"ID товара"
//	@Param			request				body		SellProductRequest	true	"Покупатель"
//	@Success		200					{object}	ProductResponse
//	@Failure		403					{object}	ErrorResponse
//	@Failure		404					{object}	ErrorResponse
//	@Failure		409					{object}	ErrorResponse	"Товар уже продан"
//	@Router			/products/{id}/sell [post]
func (h *RegistryHandler) sellProduct(w http.ResponseWriter, r *http.Request) {
	caller, err := parseCaller(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	id, err := parseProductID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err)
		return
	}

	var req SellProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	buyer, err := domain.ParseAddress(req.Buyer)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	if err := h.registryUsecase.SellProduct(r.Context(), usecase.NewSellProductReq(caller, id, buyer)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.registryUsecase.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// getProduct
//
//	@Summary	Получение товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *RegistryHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "id"))
	if err != nil {
		h.badRequest(w, err)
		return
	}

	product, err := h.registryUsecase.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// listProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/products [get]
func (h *RegistryHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.registryUsecase.ListProducts(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list products")
		WriteError(w, err)
		return
	}

	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = toProductResponse(&products[i])
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getOwner
//
//	@Summary	Текущий администратор реестра
//	@Tags		owner
//	@Produce	json
//	@Success	200	{object}	OwnerResponse
//	@Router		/owner [get]
func (h *RegistryHandler) getOwner(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, OwnerResponse{Owner: h.registryUsecase.Owner(r.Context()).String()})
}

// transferOwnership
//
//	@Summary	Передача прав администратора
//	@Tags		owner
//	@Accept		json
//	@Produce	json
//	@Param		X-Caller-Address	header		string						true	"Адрес вызывающего"
//	@Param		request				body		TransferOwnershipRequest	true	"Новый администратор"
//	@Success	200					{object}	OwnerResponse
//	@Failure	400					{object}	ErrorResponse	"Некорректный адрес"
//	@Failure	403					{object}	ErrorResponse
//	@Router		/owner [put]
func (h *RegistryHandler) transferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, err := parseCaller(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	var req TransferOwnershipRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	newOwner, err := domain.ParseAddress(req.NewOwner)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	if err := h.registryUsecase.TransferOwnership(r.Context(), usecase.NewTransferOwnershipReq(caller, newOwner)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, OwnerResponse{Owner: newOwner.String()})
}

// verifyCondition
//
//	@Summary		Проверка условия во внешнем реестре
//	@Description	Невыполненное условие возвращается как 422
//	@Tags			external-registry
//	@Accept			json
//	@Produce		json
//	@Param			X-Caller-Address	header		string					false	"Адрес вызывающего"
//	@Param			request				body		VerifyConditionRequest	true	"Параметр"
//	@Success		200					{object}	VerifyConditionResponse
//	@Failure		422					{object}	ErrorResponse	"Условие не выполнено"
//	@Router			/external-registry/verify [post]
func (h *RegistryHandler) verifyCondition(w http.ResponseWriter, r *http.Request) {
	caller, err := parseCaller(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	var req VerifyConditionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, err)
		return
	}

	ok, err := h.registryUsecase.InteractWithExternalRegistry(r.Context(), usecase.NewVerifyConditionReq(caller, h.condition, req.Param))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, VerifyConditionResponse{Verified: ok})
}

// listEvents
//
//	@Summary	Журнал событий реестра
//	@Tags		events
//	@Produce	json
//	@Param		after	query	int	false	"Вернуть события с seq больше указанного"
//	@Param		limit	query	int	false	"Максимальное число событий, не больше 1000"
//	@Success	200		{array}	domain.Event
//	@Router		/events [get]
func (h *RegistryHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	after, err := parseUintQuery(r, "after", 0)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	limit, err := parseUintQuery(r, "limit", defaultEventsLimit)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if limit == 0 || limit > maxEventsLimit {
		limit = maxEventsLimit
	}

	events, err := h.registryUsecase.Events(r.Context(), after, int(limit))
	if err != nil {
		h.logger.Errorf(err, "list events")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, events)
}

func (h *RegistryHandler) badRequest(w http.ResponseWriter, err error) {
	h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
	WriteError(w, err)
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: formatPrice(p.Price),
		CurrentOwner: p.CurrentOwner.String(),
		State:        p.State.String(),
	}
}

func parseUintQuery(r *http.Request, key string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, e.Wrap(key, e.ErrStatusBadRequest)
	}

	return v, nil
}
