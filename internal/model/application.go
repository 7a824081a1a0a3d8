package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ApplicationRecord
// @Description Loan application form forwarded to the broker as is.
type ApplicationRecord struct {
	ID          uuid.UUID `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"` // ID application id, also the message key
	Age         int       `json:"age"          example:"30"`                                   // Age applicant age
	Income      int       `json:"income"       example:"50000"`                                // Income yearly income
	Employed    bool      `json:"employed"     example:"true"`                                 // Employed employment status
	CreditScore int       `json:"credit_score" example:"700"`                                  // CreditScore applicant credit score
	LoanAmount  int       `json:"loan_amount"  example:"10000"`                                // LoanAmount requested amount
} // @Name ApplicationRecord

// Key is the canonical UUID string the message is keyed by.
func (r ApplicationRecord) Key() []byte {
	return []byte(r.ID.String())
}

func (r ApplicationRecord) Payload() ([]byte, error) {
	return json.Marshal(r)
}
