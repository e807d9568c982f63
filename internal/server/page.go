package server

import (
	"embed"
	"html"
	"html/template"
	"net/http"

	"medicine_recommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"add1":    func(i int) int { return i + 1 },
	"buyHref": buyHref,
}).ParseFS(templatesFS, "templates/*.html"))

// buyHref 输出购买链接的 href 属性，药品名不做 URL 编码
func buyHref(u string) template.HTMLAttr {
	return template.HTMLAttr(`href="` + html.EscapeString(u) + `"`)
}

// Chart 推荐结果的柱状图
type Chart struct {
	Names     []string
	Scores    []float64
	AssetsURL string
	Element   template.HTML
	Script    template.HTML
	Option    string // echarts option JSON
}

// newChart 用 go-echarts 生成药品名 - 相似度柱状图，x 轴标签旋转 45 度
func newChart(items []*model.Item) *Chart {
	if len(items) == 0 {
		return nil
	}

	ch := &Chart{
		Names:  make([]string, 0, len(items)),
		Scores: make([]float64, 0, len(items)),
	}
	data := make([]opts.BarData, 0, len(items))
	for _, it := range items {
		ch.Names = append(ch.Names, it.Name)
		ch.Scores = append(ch.Scores, it.Score)
		data = append(data, opts.BarData{Name: it.Name, Value: it.Score})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "640px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Similarity Scores of Recommended Medicines"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Medicine Name",
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Similarity Score"}),
	)
	bar.SetXAxis(ch.Names).AddSeries("Similarity Score", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#4CAF50"}),
	)

	snippet := bar.RenderSnippet()
	ch.AssetsURL = bar.AssetsHost + "echarts.min.js"
	ch.Element = template.HTML(snippet.Element)
	ch.Script = template.HTML(snippet.Script)
	ch.Option = snippet.Option
	return ch
}

type pageData struct {
	Medicines []string
	Selected  string
	Items     []*model.Item
	Chart     *Chart
	Error     string
	Accuracy  float64
}

// handleIndex 渲染单页界面
// GET /?medicine=...
func (s *Server) handleIndex(c *gin.Context) {
	data := pageData{
		Medicines: s.catalog.Names(),
		Accuracy:  s.opts.Accuracy,
	}

	medicine, submitted := c.GetQuery("medicine")
	if !submitted {
		c.HTML(http.StatusOK, "index.html", data)
		return
	}
	data.Selected = medicine

	items, err := s.recommend(c.Request.Context(), s.opts.DefaultScene, medicine)
	if err != nil {
		status, msg := errorStatus(err, s.opts.DefaultScene, medicine)
		data.Error = msg
		c.HTML(status, "index.html", data)
		return
	}

	data.Items = items
	data.Chart = newChart(items)
	c.HTML(http.StatusOK, "index.html", data)
}
