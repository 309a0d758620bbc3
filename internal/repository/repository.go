package repository

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	AuthCode AuthCodeRepository
	Product  ProductRepository
}

// NewRepositories creates the in-memory entity store
func NewRepositories() *Repositories {
	return &Repositories{
		User:     NewUserRepository(),
		AuthCode: NewAuthCodeRepository(),
		Product:  NewProductRepository(),
	}
}
