package storage

import (
	"sync"

	"github.com/DiosOne/library-api/internal/domain/models"
	"github.com/DiosOne/library-api/internal/logger"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
)

// MemStorage keeps everything in maps. It backs the service when the
// database is unreachable and the storage tests. Referential checks mirror
// the database constraints so both backends fail the same way. The mutex
// stands in for the database's own concurrency control: handlers run on
// concurrent goroutines.
type MemStorage struct {
	mu      sync.RWMutex
	books   map[int]models.Book
	authors map[int]models.Author
	members map[int]models.Member
	loans   map[int]models.Loan
	nextID  int
}

func New() *MemStorage {
	return &MemStorage{
		books:   make(map[int]models.Book),
		authors: make(map[int]models.Author),
		members: make(map[int]models.Member),
		loans:   make(map[int]models.Loan),
	}
}

func (ms *MemStorage) nextIdent() int {
	ms.nextID++
	return ms.nextID
}

// --- books ---

func (ms *MemStorage) SaveBook(book models.Book) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if book.AuthorID != nil {
		if _, ok := ms.authors[*book.AuthorID]; !ok {
			return 0, storerrros.ErrConstraint
		}
	}
	book.BookID = ms.nextIdent()
	ms.books[book.BookID] = book
	return book.BookID, nil
}

func (ms *MemStorage) GetBooks() ([]models.Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	books := []models.Book{}
	for _, book := range ms.books {
		books = append(books, book)
	}
	return books, nil
}

func (ms *MemStorage) GetBook(id int) (models.Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	book, ok := ms.books[id]
	if !ok {
		return models.Book{}, storerrros.ErrBookNotFound
	}
	return book, nil
}

func (ms *MemStorage) UpdateBook(id int, book models.Book) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.books[id]; !ok {
		return storerrros.ErrBookNotFound
	}
	if book.AuthorID != nil {
		if _, ok := ms.authors[*book.AuthorID]; !ok {
			return storerrros.ErrConstraint
		}
	}
	book.BookID = id
	ms.books[id] = book
	return nil
}

func (ms *MemStorage) DeleteBook(id int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	log := logger.Get()
	if _, ok := ms.books[id]; !ok {
		log.Warn().Int("bookid", id).Msg("book not found")
		return storerrros.ErrBookNotFound
	}
	for _, loan := range ms.loans {
		if loan.BookID == id {
			return storerrros.ErrConstraint
		}
	}
	delete(ms.books, id)
	return nil
}

// --- authors ---

func (ms *MemStorage) SaveAuthor(author models.Author) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	author.AuthorID = ms.nextIdent()
	ms.authors[author.AuthorID] = author
	return author.AuthorID, nil
}

func (ms *MemStorage) GetAuthors() ([]models.Author, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	authors := []models.Author{}
	for _, author := range ms.authors {
		authors = append(authors, author)
	}
	return authors, nil
}

func (ms *MemStorage) GetAuthor(id int) (models.Author, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	author, ok := ms.authors[id]
	if !ok {
		return models.Author{}, storerrros.ErrAuthorNotFound
	}
	return author, nil
}

func (ms *MemStorage) UpdateAuthor(id int, patch models.AuthorPatch) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	author, ok := ms.authors[id]
	if !ok {
		return storerrros.ErrAuthorNotFound
	}
	if patch.Name != nil {
		author.Name = *patch.Name
	}
	if patch.BirthYear != nil {
		author.BirthYear = patch.BirthYear
	}
	ms.authors[id] = author
	return nil
}

func (ms *MemStorage) DeleteAuthor(id int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	log := logger.Get()
	if _, ok := ms.authors[id]; !ok {
		log.Warn().Int("authorid", id).Msg("author not found")
		return storerrros.ErrAuthorNotFound
	}
	for _, book := range ms.books {
		if book.AuthorID != nil && *book.AuthorID == id {
			return storerrros.ErrConstraint
		}
	}
	delete(ms.authors, id)
	return nil
}

// --- members ---

func (ms *MemStorage) SaveMember(member models.Member) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	member.MemberID = ms.nextIdent()
	ms.members[member.MemberID] = member
	return member.MemberID, nil
}

func (ms *MemStorage) GetMembers() ([]models.Member, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	members := []models.Member{}
	for _, member := range ms.members {
		members = append(members, member)
	}
	return members, nil
}

func (ms *MemStorage) GetMember(id int) (models.Member, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	member, ok := ms.members[id]
	if !ok {
		return models.Member{}, storerrros.ErrMemberNotFound
	}
	return member, nil
}

func (ms *MemStorage) UpdateMember(id int, patch models.MemberPatch) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	member, ok := ms.members[id]
	if !ok {
		return storerrros.ErrMemberNotFound
	}
	if patch.Name != nil {
		member.Name = *patch.Name
	}
	if patch.Email != nil {
		member.Email = *patch.Email
	}
	ms.members[id] = member
	return nil
}

func (ms *MemStorage) DeleteMember(id int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	log := logger.Get()
	if _, ok := ms.members[id]; !ok {
		log.Warn().Int("memberid", id).Msg("member not found")
		return storerrros.ErrMemberNotFound
	}
	for _, loan := range ms.loans {
		if loan.MemberID == id {
			return storerrros.ErrConstraint
		}
	}
	delete(ms.members, id)
	return nil
}

// --- loans ---

func (ms *MemStorage) SaveLoan(loan models.Loan) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.books[loan.BookID]; !ok {
		return 0, storerrros.ErrConstraint
	}
	if _, ok := ms.members[loan.MemberID]; !ok {
		return 0, storerrros.ErrConstraint
	}
	loan.LoanID = ms.nextIdent()
	ms.loans[loan.LoanID] = loan
	return loan.LoanID, nil
}

func (ms *MemStorage) GetLoans() ([]models.Loan, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var loans []models.Loan
	for _, loan := range ms.loans {
		loans = append(loans, loan)
	}
	if len(loans) == 0 {
		return nil, storerrros.ErrEmptyLoansList
	}
	return loans, nil
}

func (ms *MemStorage) GetLoan(id int) (models.Loan, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	loan, ok := ms.loans[id]
	if !ok {
		return models.Loan{}, storerrros.ErrLoanNotFound
	}
	return loan, nil
}

func (ms *MemStorage) UpdateLoan(id int, patch models.LoanPatch) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	loan, ok := ms.loans[id]
	if !ok {
		return storerrros.ErrLoanNotFound
	}
	if patch.BookID != nil {
		if _, ok := ms.books[*patch.BookID]; !ok {
			return storerrros.ErrConstraint
		}
		loan.BookID = *patch.BookID
	}
	if patch.MemberID != nil {
		if _, ok := ms.members[*patch.MemberID]; !ok {
			return storerrros.ErrConstraint
		}
		loan.MemberID = *patch.MemberID
	}
	if patch.LoanDate != nil {
		loan.LoanDate = *patch.LoanDate
	}
	if patch.ReturnDate != nil {
		loan.ReturnDate = patch.ReturnDate
	}
	ms.loans[id] = loan
	return nil
}

func (ms *MemStorage) DeleteLoan(id int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	log := logger.Get()
	if _, ok := ms.loans[id]; !ok {
		log.Warn().Int("loanid", id).Msg("loan not found")
		return storerrros.ErrLoanNotFound
	}
	delete(ms.loans, id)
	return nil
}
