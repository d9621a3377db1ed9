package repositories

import (
	"strconv"
	"strings"

	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

// articleSelect returns one aggregated row per article. Like count and tag
// list come from correlated subqueries so neither multiplies the other.
const articleSelect = `
	SELECT a.id, a.title, a.content, a.image_url, a.user_id, u.username AS author,
	       a.latitude, a.longitude, a.created_at, a.updated_at,
	       (SELECT COUNT(*) FROM likes l WHERE l.article_id = a.id) AS like_count,
	       COALESCE((
	           SELECT string_agg(t.name, chr(31) ORDER BY t.name)
	           FROM article_tags at
	           JOIN tags t ON t.id = at.tag_id
	           WHERE at.article_id = a.id
	       ), '') AS tags,
	       %LIKED% AS liked
	FROM articles a
	JOIN users u ON u.id = a.user_id`

// queryArgs accumulates positional parameters.
type queryArgs []any

func (q *queryArgs) add(v any) string {
	*q = append(*q, v)
	return "$" + strconv.Itoa(len(*q))
}

func likedColumn(viewerID *int64, args *queryArgs) string {
	if viewerID == nil {
		return "FALSE"
	}
	return "EXISTS(SELECT 1 FROM likes lv WHERE lv.article_id = a.id AND lv.user_id = " + args.add(*viewerID) + ")"
}

// buildArticleListQuery assembles the filtered, aggregated and sorted listing
// query for f. Filters compose with AND; absent filters add no condition.
func buildArticleListQuery(f models.ArticleFilter) (string, []any) {
	var args queryArgs

	var sb strings.Builder
	sb.WriteString(strings.Replace(articleSelect, "%LIKED%", likedColumn(f.ViewerID, &args), 1))

	var where []string

	if tags := models.NormalizeTags(f.Tags); len(tags) > 0 {
		names := args.add(tags)
		size := args.add(len(tags))
		where = append(where, `a.id IN (
	    SELECT at.article_id
	    FROM article_tags at
	    JOIN tags t ON t.id = at.tag_id
	    WHERE t.name = ANY(`+names+`)
	    GROUP BY at.article_id
	    HAVING COUNT(DISTINCT t.name) = `+size+`
	)`)
	}

	if f.UserID != nil {
		where = append(where, "a.user_id = "+args.add(*f.UserID))
	}

	if len(where) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(where, "\n\t  AND "))
	}

	sb.WriteString("\n\tORDER BY ")
	switch {
	case f.Sort == models.SortLikes:
		sb.WriteString("like_count DESC, a.id DESC")
	case f.Sort == models.SortDistance && f.Reference != nil:
		args.add(f.Reference.Latitude)
		args.add(f.Reference.Longitude)
		sb.WriteString(geo.HaversineSQL("a.latitude", "a.longitude", len(args)-1, len(args)))
		sb.WriteString(" ASC, a.id DESC")
	default:
		sb.WriteString("a.created_at DESC, a.id DESC")
	}

	return sb.String(), args
}

// buildArticleByIDQuery selects the aggregated row of a single article.
func buildArticleByIDQuery(id int64, viewerID *int64) (string, []any) {
	var args queryArgs
	query := strings.Replace(articleSelect, "%LIKED%", likedColumn(viewerID, &args), 1)
	query += "\n\tWHERE a.id = " + args.add(id)
	return query, args
}
