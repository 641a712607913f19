package orders

import (
	"context"

	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

// TxRunner executes fn with an order repository bound to a single database
// transaction. Committed when fn returns nil, rolled back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(repo repository.OrderRepository) error) error
}

// EstimatePDFGenerator renders an assembled estimate document to PDF bytes.
type EstimatePDFGenerator interface {
	Render(doc *EstimateDocument) ([]byte, error)
}
