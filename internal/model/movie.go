package model

// 人物在电影中的角色
const (
	RoleDirector = "director"
	RoleWriter   = "writer"
	RoleActor    = "actor"
)

// Movie 电影（movies 表），主键为 IMDb 数字 ID
type Movie struct {
	IMDbID     int64   `json:"imdbid" gorm:"column:imdbid;primaryKey;autoIncrement:false"`
	RTID       *int64  `json:"rtid" gorm:"column:rtid"`
	Title      string  `json:"title" gorm:"column:title"`
	Year       *int64  `json:"year" gorm:"column:year"`
	Released   *string `json:"released" gorm:"column:released"`
	MPAARating string  `json:"mpaa_rating" gorm:"column:mpaa_rating"`
	Runtime    *int64  `json:"runtime" gorm:"column:runtime"`
}

func (Movie) TableName() string { return "movies" }

// Person 人物（people 表），姓名唯一，烂番茄 ID 可为空
type Person struct {
	ID   int64  `json:"id" gorm:"column:id;primaryKey"`
	RTID *int64 `json:"rtid" gorm:"column:rtid"`
	Name string `json:"name" gorm:"column:name"`
}

func (Person) TableName() string { return "people" }

// MoviePerson 电影与人物的角色关联（movie_people 表）
type MoviePerson struct {
	Movie  int64  `json:"movie" gorm:"column:movie"`
	Person int64  `json:"person" gorm:"column:person"`
	Role   string `json:"role" gorm:"column:role"`
	Descr  string `json:"descr" gorm:"column:descr"`
}

func (MoviePerson) TableName() string { return "movie_people" }

// MovieGenre 电影类型标签（movie_genres 表）
type MovieGenre struct {
	Movie int64  `json:"movie" gorm:"column:movie"`
	Genre string `json:"genre" gorm:"column:genre"`
}

func (MovieGenre) TableName() string { return "movie_genres" }

// IngestStats 一次搜索的采集统计
type IngestStats struct {
	Pages   int
	Seen    int
	Created int
	Skipped int
}

// Add 累加统计
func (s *IngestStats) Add(o IngestStats) {
	s.Pages += o.Pages
	s.Seen += o.Seen
	s.Created += o.Created
	s.Skipped += o.Skipped
}
