package models

// Book is a row of the books table. Optional columns are pointers so a
// missing value round-trips as JSON null instead of a zero value.
type Book struct {
	BookID        int     `json:"bookid,omitempty"`
	Title         string  `json:"title"`
	ISBN          string  `json:"isbn"`
	Genre         *string `json:"genre"`
	YearPublished *int    `json:"yearpublished"`
	AuthorID      *int    `json:"authorid"`
}

type Author struct {
	AuthorID  int    `json:"authorid,omitempty"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birthyear"`
}

type Member struct {
	MemberID int    `json:"memberid,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Loan dates travel as YYYY-MM-DD strings; a nil ReturnDate means the loan
// is still open.
type Loan struct {
	LoanID     int     `json:"loanid,omitempty"`
	BookID     int     `json:"bookid"`
	MemberID   int     `json:"memberid"`
	LoanDate   string  `json:"loandate"`
	ReturnDate *string `json:"returndate"`
}

// Patch structs carry partial updates: nil fields keep the stored value.

type AuthorPatch struct {
	Name      *string `json:"name"`
	BirthYear *int    `json:"birthyear"`
}

type MemberPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type LoanPatch struct {
	BookID     *int    `json:"bookid"`
	MemberID   *int    `json:"memberid"`
	LoanDate   *string `json:"loandate"`
	ReturnDate *string `json:"returndate"`
}
