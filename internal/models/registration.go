package models

// ClientRegistration is the input for issuing a new card. CardNumber is
// optional; when empty the issuer generates one.
type ClientRegistration struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Gender      string   `json:"gender"`
	DateOfBirth string   `json:"dateOfBirth"`
	Company     string   `json:"company"`
	CardType    CardType `json:"cardType"`

	InitialPoints  *int     `json:"initialPoints,omitempty"`
	InitialBalance *float64 `json:"initialBalance,omitempty"`
	Discount       *int     `json:"discount,omitempty"`
	Membership     string   `json:"membership,omitempty"`
	CardNumber     string   `json:"cardNumber,omitempty"`
}

// ClientUpdate carries an administrative override edit. Nil fields are
// left untouched. This path deliberately bypasses the ledger's amount and
// sign validation; only the card-type reset rule is applied.
type ClientUpdate struct {
	FirstName   *string   `json:"firstName,omitempty"`
	LastName    *string   `json:"lastName,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	DateOfBirth *string   `json:"dateOfBirth,omitempty"`
	Company     *string   `json:"company,omitempty"`
	CardType    *CardType `json:"cardType,omitempty"`

	Points     *int     `json:"points,omitempty"`
	Discount   *int     `json:"discount,omitempty"`
	Balance    *float64 `json:"balance,omitempty"`
	Membership *string  `json:"membership,omitempty"`
}
