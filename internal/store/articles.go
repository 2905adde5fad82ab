package store

import (
	"database/sql"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const articleColumns = `id, name, kind, authors, year, title, citation_group_id,
	series, volume, issue, start_page, end_page, url, doi, parent_id, tags`

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	a := &model.Article{}
	var cg, parent sql.NullInt64
	err := row.Scan(
		&a.ID, &a.Name, &a.Kind, &a.Authors, &a.Year, &a.Title, &cg,
		&a.Series, &a.Volume, &a.Issue, &a.StartPage, &a.EndPage,
		&a.URL, &a.DOI, &parent, &a.RawTags,
	)
	if err != nil {
		return nil, err
	}
	a.CitationGroupID = scanID(cg)
	a.ParentID = scanID(parent)
	return a, nil
}

// CreateArticle inserts a new article and fills in its id.
func (s *Store) CreateArticle(a *model.Article) error {
	res, err := s.db.Exec(
		`INSERT INTO articles (name, kind, authors, year, title, citation_group_id,
			series, volume, issue, start_page, end_page, url, doi, parent_id, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Kind, a.Authors, a.Year, a.Title, nullID(a.CitationGroupID),
		a.Series, a.Volume, a.Issue, a.StartPage, a.EndPage, a.URL, a.DOI,
		nullID(a.ParentID), a.RawTags,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new article id: %w", err)
	}
	a.ClearDirty()
	s.cachePut(a)
	return nil
}

// GetArticle loads one article by id.
func (s *Store) GetArticle(id int64) (*model.Article, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindArticle, ID: id}]; ok {
		return rec.(*model.Article), nil
	}
	a, err := scanArticle(s.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindArticle, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	s.cachePut(a)
	return a, nil
}

// SaveArticle writes an article back and clears its dirty flag.
func (s *Store) SaveArticle(a *model.Article) error {
	_, err := s.db.Exec(
		`UPDATE articles SET name = ?, kind = ?, authors = ?, year = ?, title = ?,
			citation_group_id = ?, series = ?, volume = ?, issue = ?, start_page = ?,
			end_page = ?, url = ?, doi = ?, parent_id = ?, tags = ?
		 WHERE id = ?`,
		a.Name, a.Kind, a.Authors, a.Year, a.Title, nullID(a.CitationGroupID),
		a.Series, a.Volume, a.Issue, a.StartPage, a.EndPage, a.URL, a.DOI,
		nullID(a.ParentID), a.RawTags, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	a.ClearDirty()
	s.cachePut(a)
	return nil
}

func (s *Store) queryArticles(query string, args ...any) ([]*model.Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		s.cachePut(a)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ListArticles returns articles ordered by id. With onlyValid,
// redirected and removed articles are excluded. A limit of 0 means no
// limit.
func (s *Store) ListArticles(onlyValid bool, limit int) ([]*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	if onlyValid {
		query += fmt.Sprintf(` WHERE kind NOT IN (%d, %d)`,
			model.ArticleRedirect, model.ArticleRemoved)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	return s.queryArticles(query)
}

// ArticlesByCitationGroup returns the valid articles in one group.
func (s *Store) ArticlesByCitationGroup(cgID int64) ([]*model.Article, error) {
	return s.queryArticles(
		`SELECT `+articleColumns+` FROM articles
		 WHERE citation_group_id = ? AND kind NOT IN (?, ?) ORDER BY id`,
		cgID, model.ArticleRedirect, model.ArticleRemoved,
	)
}
