// Package dataset 提供评分表（Rating Table）：所有模型只读的强类型内存视图。
//
// 输入契约是预处理产出的 CSV：
//
//	user_id:int, movie_id:int, rating:float, title:string, genres:string
//
// 其中 genres 为 '|' 连接的类型标签（可为空串）。
// 表一次性加载、构建索引后不可变；表之后没有任何写者，无需加锁。
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/rushteam/moviekit/core"
)

// RatingMin/RatingMax 是评分取值范围 [1,5]。
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// Interaction 是一条用户-电影评分记录。
type Interaction struct {
	UserID  int64
	MovieID int64
	Rating  float64
}

// Movie 是目录中的一部电影。
type Movie struct {
	ID     int64
	Title  string
	Genres []string
}

// Table 是不可变的评分表视图：交互列表 + 电影目录 + 双向索引。
type Table struct {
	interactions []Interaction
	movies       map[int64]*Movie
	movieIDs     []int64 // 升序，遍历目录时的确定性顺序
	userIDs      []int64 // 升序
	userRatings  map[int64]map[int64]float64 // user -> movie -> rating
	movieRaters  map[int64]map[int64]float64 // movie -> user -> rating
	globalMean   float64
}

// Load 从处理后的 CSV 加载评分表。
// 任何行的解析失败都视为数据完整性错误（fatal），不做修复。
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeDataIntegrity,
			fmt.Sprintf("dataset: open %s: %v", path, err))
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeDataIntegrity,
			fmt.Sprintf("dataset: read %s: %v", path, err))
	}
	if len(rows) < 2 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeDataIntegrity,
			"dataset: table has no data rows")
	}

	// 首行必须是表头 user_id,movie_id,rating,title,genres
	header := rows[0]
	if len(header) != 5 || header[0] != "user_id" || header[1] != "movie_id" ||
		header[2] != "rating" || header[3] != "title" || header[4] != "genres" {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeDataIntegrity,
			fmt.Sprintf("dataset: unexpected header %v", header))
	}

	interactions := make([]Interaction, 0, len(rows)-1)
	movies := make([]Movie, 0, 256)
	seenMovies := make(map[int64]bool, 256)

	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != 5 {
			return nil, integrityErr(line, "expected 5 columns")
		}
		userID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, integrityErr(line, "bad user_id "+row[0])
		}
		movieID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, integrityErr(line, "bad movie_id "+row[1])
		}
		rating, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, integrityErr(line, "bad rating "+row[2])
		}
		if rating < RatingMin || rating > RatingMax {
			return nil, integrityErr(line, fmt.Sprintf("rating %v outside [1,5]", rating))
		}

		genres := ParseGenres(row[4])
		for _, g := range genres {
			if !IsKnownGenre(g) {
				return nil, integrityErr(line, "unknown genre "+g)
			}
		}

		interactions = append(interactions, Interaction{UserID: userID, MovieID: movieID, Rating: rating})
		if !seenMovies[movieID] {
			seenMovies[movieID] = true
			movies = append(movies, Movie{ID: movieID, Title: row[3], Genres: genres})
		}
	}

	return New(interactions, movies)
}

func integrityErr(line int, msg string) error {
	return core.NewDomainError(core.ModuleDataset, core.ErrorCodeDataIntegrity,
		fmt.Sprintf("dataset: line %d: %s", line, msg))
}

// New 从交互与目录构建评分表并建立索引。
// 被评分的 movie_id 必须出现在目录里，否则是数据完整性错误。
func New(interactions []Interaction, movies []Movie) (*Table, error) {
	t := &Table{
		interactions: interactions,
		movies:       make(map[int64]*Movie, len(movies)),
		userRatings:  make(map[int64]map[int64]float64),
		movieRaters:  make(map[int64]map[int64]float64),
	}

	for i := range movies {
		m := movies[i]
		t.movies[m.ID] = &m
	}

	var sum float64
	for _, in := range interactions {
		if _, ok := t.movies[in.MovieID]; !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeDataIntegrity,
				fmt.Sprintf("dataset: rated movie %d missing from catalog", in.MovieID))
		}
		if t.userRatings[in.UserID] == nil {
			t.userRatings[in.UserID] = make(map[int64]float64)
		}
		t.userRatings[in.UserID][in.MovieID] = in.Rating
		if t.movieRaters[in.MovieID] == nil {
			t.movieRaters[in.MovieID] = make(map[int64]float64)
		}
		t.movieRaters[in.MovieID][in.UserID] = in.Rating
		sum += in.Rating
	}
	if len(interactions) > 0 {
		t.globalMean = sum / float64(len(interactions))
	}

	t.movieIDs = make([]int64, 0, len(t.movies))
	for id := range t.movies {
		t.movieIDs = append(t.movieIDs, id)
	}
	sort.Slice(t.movieIDs, func(i, j int) bool { return t.movieIDs[i] < t.movieIDs[j] })

	t.userIDs = make([]int64, 0, len(t.userRatings))
	for id := range t.userRatings {
		t.userIDs = append(t.userIDs, id)
	}
	sort.Slice(t.userIDs, func(i, j int) bool { return t.userIDs[i] < t.userIDs[j] })

	return t, nil
}

// Subset 以同一份目录和给定的交互子集构建新表（训练/测试切分用）。
func (t *Table) Subset(interactions []Interaction) (*Table, error) {
	movies := make([]Movie, 0, len(t.movieIDs))
	for _, id := range t.movieIDs {
		movies = append(movies, *t.movies[id])
	}
	return New(interactions, movies)
}

// Interactions 返回全部交互记录（按加载顺序）。调用方不得修改。
func (t *Table) Interactions() []Interaction { return t.interactions }

// NumInteractions 返回交互条数。
func (t *Table) NumInteractions() int { return len(t.interactions) }

// MovieIDs 返回目录中全部电影 ID（升序）。调用方不得修改。
func (t *Table) MovieIDs() []int64 { return t.movieIDs }

// UserIDs 返回有评分记录的全部用户 ID（升序）。调用方不得修改。
func (t *Table) UserIDs() []int64 { return t.userIDs }

// Movie 按 ID 查电影。
func (t *Table) Movie(id int64) (*Movie, bool) {
	m, ok := t.movies[id]
	return m, ok
}

// Title 按 ID 查标题；目录中不存在时返回空串。
func (t *Table) Title(id int64) string {
	if m, ok := t.movies[id]; ok {
		return m.Title
	}
	return ""
}

// UserRatings 返回某用户的 movie -> rating；无历史返回 nil。调用方不得修改。
func (t *Table) UserRatings(userID int64) map[int64]float64 {
	return t.userRatings[userID]
}

// MovieRaters 返回某电影的 user -> rating；无人评分返回 nil。调用方不得修改。
func (t *Table) MovieRaters(movieID int64) map[int64]float64 {
	return t.movieRaters[movieID]
}

// HasUser 报告用户是否有评分历史。
func (t *Table) HasUser(userID int64) bool {
	return len(t.userRatings[userID]) > 0
}

// GlobalMean 返回全表平均分；空表为 0。
func (t *Table) GlobalMean() float64 { return t.globalMean }

// MovieMean 返回某电影的平均分；无人评分时 ok 为 false。
func (t *Table) MovieMean(movieID int64) (float64, bool) {
	raters := t.movieRaters[movieID]
	if len(raters) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range raters {
		sum += r
	}
	return sum / float64(len(raters)), true
}
