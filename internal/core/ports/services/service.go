package services

// ServicesProvider bundles the service facades handed to the HTTP layer.
type ServicesProvider struct {
	AccountSvc AccountSvcFacade
	ReceiptSvc ReceiptSvcFacade
	PaymentSvc PaymentSvcFacade
	UserSvc    UserSvcFacade
	AuthSvc    AuthSvcFacade
}
