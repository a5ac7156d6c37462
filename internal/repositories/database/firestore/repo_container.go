package firestore

import (
	"cloud.google.com/go/firestore"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Firestore-backed repositories.
func NewRepositoryProvider(client *firestore.Client) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo: newInvoicesFirestore(client),
		UserRepo:    newUsersFirestore(client),
	}
}
