package handlers

// HandlerBundle groups the endpoint handlers registered by the router.
type HandlerBundle struct {
	Catalog  *CatalogHandler
	Drafts   *DraftHandler
	Services *ServiceHandler
	Booking  *BookingHandler
}
