// internal/nav/markup.go
package nav

import "html/template"

var headerTemplate = template.Must(template.New("header").Parse(headerHTML))

const headerHTML = `<div id="indexTop">
<img src="{{ .Icon }}" class="icon aboutlauncher clickable" width="24" height="24" alt="">
<h1 class="aboutlauncher clickable">{{ .Title }}</h1>
<div class="pagenav">
<div class="pageleft">&#x25C4;</div>
<div class="pageswitch"><div class="switchlabel">{{ .ActiveTitle }}</div><ul>
{{- range .Items }}<li data-index="{{ .Index }}"{{ if .Selected }} class="selected"{{ end }}>{{ .Title }}</li>{{ end -}}
</ul></div>
<div class="pageright">&#x25BA;</div>
</div>
</div>
<div id="aboutbox" style="display: none">
<img src="{{ .Icon }}" style="float: left; width: 32px; height: 32px; margin-left: 12px" alt="">
<div style="margin: 0 24px 0 60px">
{{- if .Description }}{{ .Description }}<hr>{{ end }}
<p>This document was authored using <a href="http://systemfolder.wordpress.com/2010/03/25/mac-classics-docmaker/" target="_blank">DOCMaker</a>, created by Mark S. Wall, Green Mountain Software.</p>
<p>The document was converted to HTML using <a href="http://docmaker.whpress.com/" target="_blank">DOCMaker Library</a>, created by Jeremiah Morris, Weedhopper Press.</p>
<p>Download as: <a href="{{ .DocmakerArchive }}">DOCMaker</a>, <a href="{{ .HTMLArchive }}">HTML</a></p>
</div>
</div>`
