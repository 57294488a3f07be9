package model

// GenreVocabularyVersion 类型词表版本，修改 GenreVocabulary 时递增
const GenreVocabularyVersion = 1

// GenreVocabulary movie_genres.genre 允许的取值，用于生成 genre_check 约束
var GenreVocabulary = []string{
	"Action",
	"Adult",
	"Adventure",
	"Animation",
	"Biography",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"Film-Noir",
	"Game-Show",
	"History",
	"Horror",
	"Music",
	"Musical",
	"Mystery",
	"News",
	"Reality-TV",
	"Romance",
	"Sci-Fi",
	"Short",
	"Sport",
	"Talk-Show",
	"Thriller",
	"War",
	"Western",
}

// NotAvailable OMDb 用来表示缺失字段的占位值
const NotAvailable = "N/A"
