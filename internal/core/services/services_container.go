package services

import (
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
	"github.com/SscSPs/simple_invoice_app/internal/platform/config"
)

// ContainerOption configures optional services of the container.
type ContainerOption func(*portssvc.ServiceContainer)

// WithFirebaseAuth enables Firebase sign-in using the given verifier,
// normally the *auth.Client of the Firebase app.
func WithFirebaseAuth(verifier FirebaseTokenVerifier) ContainerOption {
	return func(c *portssvc.ServiceContainer) {
		if verifier != nil {
			c.FirebaseAuth = NewFirebaseAuthService(verifier)
		}
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, encoder portssvc.DocumentEncoder, options ...ContainerOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Invoice = NewInvoiceService(repos.InvoiceRepo)
	container.Document = NewDocumentService(container.Invoice, encoder)
	container.User = NewUserService(repos.UserRepo)

	container.TokenService = NewTokenService(cfg)
	if cfg.GoogleSignInEnabled() {
		container.GoogleOAuth = NewGoogleOAuthService(cfg)
	}

	for _, option := range options {
		option(container)
	}
	return container
}
