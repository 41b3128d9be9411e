package printer

import (
	"html/template"
	"io"
)

var htmlReceipt = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"date":  LongDate,
	"clock": Clock,
	"money": Money,
}).Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>{{.ShopName}}{{if .Number}} Beleg #{{.Number}}{{end}}</title>
<style>
@page { size: 80mm auto; margin: 0; }
body { width: 72mm; margin: 4mm; font-family: "Courier New", monospace; font-size: 12px; color: #000; }
header, footer { text-align: center; }
h1 { font-size: 18px; margin: 0 0 4px; }
header p, footer p { margin: 2px 0; }
table { width: 100%; border-collapse: collapse; margin: 8px 0; }
th { text-align: left; border-bottom: 1px dashed #000; }
td.qty, td.sum, th.qty, th.sum { text-align: right; white-space: nowrap; }
.total { display: flex; justify-content: space-between; font-weight: bold; font-size: 16px; border-top: 2px solid #000; border-bottom: 2px solid #000; padding: 4px 0; }
@media screen { body { border: 1px solid #ccc; padding: 4mm; } }
</style>
</head>
<body onload="window.print()">
<header>
<h1>{{.ShopName}}</h1>
<p>{{date .Time}}</p>
<p>{{clock .Time}}</p>
{{- if .Number}}
<p>Beleg #{{.Number}}</p>
{{- end}}
</header>
<table>
<thead><tr><th>Artikel</th><th class="qty">Menge</th><th class="sum">Summe</th></tr></thead>
<tbody>
{{- range .Lines}}
<tr class="item"><td>{{.Name}}</td><td class="qty">{{.Quantity}}×</td><td class="sum">{{money .Total}}</td></tr>
{{- end}}
</tbody>
</table>
<div class="total"><span>GESAMT</span><span>{{money .Total}}</span></div>
<footer>
<p>` + footerThanks + `</p>
<p>` + footerStars + `</p>
</footer>
</body>
</html>
`))

// RenderHTML writes r as a standalone page sized for 80 mm receipt paper.
func RenderHTML(w io.Writer, r Receipt) error {
	return htmlReceipt.Execute(w, r)
}
