package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DiosOne/library-api/internal/domain/models"
	"github.com/DiosOne/library-api/internal/logger"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
)

type DBStorage struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewDB(ctx context.Context, addr string, timeout time.Duration) (*DBStorage, error) {
	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DBStorage{pool: pool, timeout: timeout}, nil
}

func (dbs *DBStorage) Close() {
	dbs.pool.Close()
}

func (dbs *DBStorage) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbs.timeout)
}

// classify swaps integrity-constraint violations for the stable sentinel;
// the raw driver error is for the logs only.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return storerrros.ErrConstraint
	}
	return err
}

// --- books ---

func (dbs *DBStorage) SaveBook(book models.Book) (int, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	var id int
	err := dbs.pool.QueryRow(ctx,
		`INSERT INTO books (title, isbn, genre, yearpublished, authorid)
         VALUES ($1, $2, $3, $4, $5) RETURNING bookid`,
		book.Title, book.ISBN, book.Genre, book.YearPublished, book.AuthorID).Scan(&id)
	if err != nil {
		log.Error().Err(err).Msg("insert book failed")
		return 0, classify(err)
	}
	return id, nil
}

func (dbs *DBStorage) GetBooks() ([]models.Book, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	rows, err := dbs.pool.Query(ctx, `SELECT bookid, title, isbn, genre, yearpublished, authorid FROM books`)
	if err != nil {
		log.Error().Err(err).Msg("failed get all books from db")
		return nil, err
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.BookID, &book.Title, &book.ISBN, &book.Genre, &book.YearPublished, &book.AuthorID); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (dbs *DBStorage) GetBook(id int) (models.Book, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	row := dbs.pool.QueryRow(ctx,
		`SELECT bookid, title, isbn, genre, yearpublished, authorid FROM books WHERE bookid = $1`, id)
	var book models.Book
	if err := row.Scan(&book.BookID, &book.Title, &book.ISBN, &book.Genre, &book.YearPublished, &book.AuthorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, storerrros.ErrBookNotFound
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Book{}, err
	}
	return book, nil
}

func (dbs *DBStorage) UpdateBook(id int, book models.Book) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx,
		`UPDATE books SET title = $1, isbn = $2, genre = $3, yearpublished = $4, authorid = $5 WHERE bookid = $6`,
		book.Title, book.ISBN, book.Genre, book.YearPublished, book.AuthorID, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to update book")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return storerrros.ErrBookNotFound
	}
	return nil
}

func (dbs *DBStorage) DeleteBook(id int) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx, `DELETE FROM books WHERE bookid = $1`, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete book")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		log.Warn().Int("bookid", id).Msg("book not found")
		return storerrros.ErrBookNotFound
	}
	return nil
}

// --- authors ---

func (dbs *DBStorage) SaveAuthor(author models.Author) (int, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	var id int
	err := dbs.pool.QueryRow(ctx,
		`INSERT INTO authors (name, birthyear) VALUES ($1, $2) RETURNING authorid`,
		author.Name, author.BirthYear).Scan(&id)
	if err != nil {
		log.Error().Err(err).Msg("insert author failed")
		return 0, classify(err)
	}
	return id, nil
}

func (dbs *DBStorage) GetAuthors() ([]models.Author, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	rows, err := dbs.pool.Query(ctx, `SELECT authorid, name, birthyear FROM authors`)
	if err != nil {
		log.Error().Err(err).Msg("failed get all authors from db")
		return nil, err
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(&author.AuthorID, &author.Name, &author.BirthYear); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

func (dbs *DBStorage) GetAuthor(id int) (models.Author, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	row := dbs.pool.QueryRow(ctx, `SELECT authorid, name, birthyear FROM authors WHERE authorid = $1`, id)
	var author models.Author
	if err := row.Scan(&author.AuthorID, &author.Name, &author.BirthYear); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Author{}, storerrros.ErrAuthorNotFound
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Author{}, err
	}
	return author, nil
}

func (dbs *DBStorage) UpdateAuthor(id int, patch models.AuthorPatch) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx,
		`UPDATE authors SET name = COALESCE($1, name), birthyear = COALESCE($2, birthyear) WHERE authorid = $3`,
		patch.Name, patch.BirthYear, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to update author")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return storerrros.ErrAuthorNotFound
	}
	return nil
}

func (dbs *DBStorage) DeleteAuthor(id int) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx, `DELETE FROM authors WHERE authorid = $1`, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete author")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		log.Warn().Int("authorid", id).Msg("author not found")
		return storerrros.ErrAuthorNotFound
	}
	return nil
}

// --- members ---

func (dbs *DBStorage) SaveMember(member models.Member) (int, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	var id int
	err := dbs.pool.QueryRow(ctx,
		`INSERT INTO members (name, email) VALUES ($1, $2) RETURNING memberid`,
		member.Name, member.Email).Scan(&id)
	if err != nil {
		log.Error().Err(err).Msg("insert member failed")
		return 0, classify(err)
	}
	return id, nil
}

func (dbs *DBStorage) GetMembers() ([]models.Member, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	rows, err := dbs.pool.Query(ctx, `SELECT memberid, name, email FROM members`)
	if err != nil {
		log.Error().Err(err).Msg("failed get all members from db")
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var member models.Member
		if err := rows.Scan(&member.MemberID, &member.Name, &member.Email); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (dbs *DBStorage) GetMember(id int) (models.Member, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	row := dbs.pool.QueryRow(ctx, `SELECT memberid, name, email FROM members WHERE memberid = $1`, id)
	var member models.Member
	if err := row.Scan(&member.MemberID, &member.Name, &member.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Member{}, storerrros.ErrMemberNotFound
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Member{}, err
	}
	return member, nil
}

func (dbs *DBStorage) UpdateMember(id int, patch models.MemberPatch) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx,
		`UPDATE members SET name = COALESCE($1, name), email = COALESCE($2, email) WHERE memberid = $3`,
		patch.Name, patch.Email, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to update member")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return storerrros.ErrMemberNotFound
	}
	return nil
}

func (dbs *DBStorage) DeleteMember(id int) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx, `DELETE FROM members WHERE memberid = $1`, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete member")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		log.Warn().Int("memberid", id).Msg("member not found")
		return storerrros.ErrMemberNotFound
	}
	return nil
}

// --- loans ---

func (dbs *DBStorage) SaveLoan(loan models.Loan) (int, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	var id int
	err := dbs.pool.QueryRow(ctx,
		`INSERT INTO loans (bookid, memberid, loandate, returndate)
         VALUES ($1, $2, $3::date, $4::date) RETURNING loanid`,
		loan.BookID, loan.MemberID, loan.LoanDate, loan.ReturnDate).Scan(&id)
	if err != nil {
		log.Error().Err(err).Msg("insert loan failed")
		return 0, classify(err)
	}
	return id, nil
}

func (dbs *DBStorage) GetLoans() ([]models.Loan, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	rows, err := dbs.pool.Query(ctx,
		`SELECT loanid, bookid, memberid, loandate::text, returndate::text FROM loans`)
	if err != nil {
		log.Error().Err(err).Msg("failed get all loans from db")
		return nil, err
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.LoanID, &loan.BookID, &loan.MemberID, &loan.LoanDate, &loan.ReturnDate); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, storerrros.ErrEmptyLoansList
	}
	return loans, nil
}

func (dbs *DBStorage) GetLoan(id int) (models.Loan, error) {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	row := dbs.pool.QueryRow(ctx,
		`SELECT loanid, bookid, memberid, loandate::text, returndate::text FROM loans WHERE loanid = $1`, id)
	var loan models.Loan
	if err := row.Scan(&loan.LoanID, &loan.BookID, &loan.MemberID, &loan.LoanDate, &loan.ReturnDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Loan{}, storerrros.ErrLoanNotFound
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Loan{}, err
	}
	return loan, nil
}

func (dbs *DBStorage) UpdateLoan(id int, patch models.LoanPatch) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx,
		`UPDATE loans SET bookid = COALESCE($1, bookid), memberid = COALESCE($2, memberid),
         loandate = COALESCE($3::date, loandate), returndate = COALESCE($4::date, returndate)
         WHERE loanid = $5`,
		patch.BookID, patch.MemberID, patch.LoanDate, patch.ReturnDate, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to update loan")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		return storerrros.ErrLoanNotFound
	}
	return nil
}

func (dbs *DBStorage) DeleteLoan(id int) error {
	log := logger.Get()
	ctx, cancel := dbs.callCtx()
	defer cancel()

	res, err := dbs.pool.Exec(ctx, `DELETE FROM loans WHERE loanid = $1`, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete loan")
		return classify(err)
	}
	if res.RowsAffected() == 0 {
		log.Warn().Int("loanid", id).Msg("loan not found")
		return storerrros.ErrLoanNotFound
	}
	return nil
}
