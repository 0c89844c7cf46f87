package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

var (
	// headerKeywords mark a row or cell as header text.
	headerKeywords = []string{
		"姓名", "名字", "学号", "考号", "准考证", "班级", "班别", "总分", "排名", "名次",
		"语文", "数学", "英语", "物理", "化学", "生物", "政治", "历史", "地理", "成绩", "分数",
		"name", "student", "class", "total", "rank", "score",
		"chinese", "math", "english", "physics", "chemistry", "biology", "politics", "history", "geography",
	}
	// strongHeaderTerms make a second row a sub-header on their own.
	strongHeaderTerms = []string{"姓名", "原始分", "赋分", "标准分", "排名", "名次", "name", "raw", "scaled", "rank"}

	nameKeywords  = []string{"姓名", "名字", "name"}
	idKeywords    = []string{"学号", "考号", "准考证", "学籍号", "考生号", "studentid", "examid", "id"}
	metaKeywords  = []string{"考场", "座位号", "座号", "序号", "编号"}
	totalKeywords = models.MetricTotal.Info().Keywords
	totalExact    = []string{"合计", "总计", "total"}
	scaledWords   = []string{"赋分", "标准分", "折算", "换算", "加权", "等级分", "scaled", "weighted"}

	classExact     = []string{"班级", "班别", "班", "行政班", "教学班", "class"}
	classLoose     = []string{"班级", "班别", "class"}
	classExcluded  = []string{"班主任", "teacher"}
	rankWords      = []string{"排名", "名次", "排序", "位次", "rank"}
	classRankAbbr  = []string{"班名", "班次", "班排"}
	schoolRankAbbr = []string{"校名", "校次", "校排", "年名", "年排", "级名", "级排"}
	classScope     = []string{"班", "class"}
	schoolScope    = []string{"校", "年级", "全级", "级部", "年段", "school", "grade"}

	// nonNameTokens are short Han strings that commonly appear in name-like
	// positions without being names.
	nonNameTokens = map[string]bool{
		"缺考": true, "合计": true, "总计": true, "平均": true, "平均分": true,
		"最高分": true, "最低分": true, "男": true, "女": true, "姓名": true,
	}

	personNameRe = regexp.MustCompile(`^[\p{Han}·]{2,5}$`)
	bareNumberRe = regexp.MustCompile(`^[+-]?\d+(\.\d+)?%?$`)
)

// NormalizeHeader folds width and case and strips whitespace and punctuation.
func NormalizeHeader(s string) string {
	s = width.Fold.String(s)
	s = cases.Fold().String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func equalsAny(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}

// LooksLikePersonName reports whether s is a plausible short personal name.
func LooksLikePersonName(s string) bool {
	s = strings.TrimSpace(s)
	if nonNameTokens[s] || !personNameRe.MatchString(s) || strings.HasSuffix(s, "班") {
		return false
	}
	h := NormalizeHeader(s)
	return !containsAny(h, headerKeywords) && !containsAny(h, strongHeaderTerms)
}

func looksLikeBareNumber(s string) bool {
	return bareNumberRe.MatchString(strings.TrimSpace(s))
}

func isHeaderKeyword(text string) bool {
	return containsAny(NormalizeHeader(text), headerKeywords)
}

// keywordHits counts cells containing a header keyword.
func keywordHits(row []models.Cell) int {
	hits := 0
	for _, c := range row {
		if !c.IsEmpty() && isHeaderKeyword(c.Text) {
			hits++
		}
	}
	return hits
}

func hasStrongTerm(row []models.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() && containsAny(NormalizeHeader(c.Text), strongHeaderTerms) {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// Header predicates below take normalized header text.

func isRankHeader(h string) bool {
	return containsAny(h, rankWords) || containsAny(h, classRankAbbr) || containsAny(h, schoolRankAbbr)
}

func isClassRankHeader(h string) bool {
	if containsAny(h, classRankAbbr) {
		return true
	}
	return containsAny(h, rankWords) && containsAny(h, classScope) && !containsAny(h, schoolScope)
}

func isSchoolRankHeader(h string) bool {
	if containsAny(h, schoolRankAbbr) {
		return !containsAny(h, classScope)
	}
	return containsAny(h, rankWords) && containsAny(h, schoolScope) && !containsAny(h, classScope)
}

func isIDHeader(h string) bool { return containsAny(h, idKeywords) }

func isClassHeaderExact(h string) bool {
	return !isRankHeader(h) && equalsAny(h, classExact)
}

func isClassHeaderLoose(h string) bool {
	return !isRankHeader(h) && !containsAny(h, classExcluded) && containsAny(h, classLoose)
}

// isNameHeader reports whether a header alone reads as a name column.
func isNameHeader(h string) bool {
	if !containsAny(h, nameKeywords) {
		return false
	}
	return !isRankHeader(h) && !isClassHeaderLoose(h) && !isIDHeader(h)
}

func isTotalHeader(h string) bool {
	return containsAny(h, totalKeywords) || equalsAny(h, totalExact)
}

// isIdentityHeader covers columns that can never hold a score.
func isIdentityHeader(h string) bool {
	return isIDHeader(h) || containsAny(h, metaKeywords) || isNameHeader(h) ||
		isClassHeaderExact(h) || isClassHeaderLoose(h)
}
