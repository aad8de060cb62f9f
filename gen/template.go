package gen

import (
	"fmt"
	"text/template"
)

var _template_funcs = template.FuncMap{
	"hex": func(v uint64) string { return fmt.Sprintf("%#x", v) },
}

const fileTmpl = `{{define "file" -}}
// Code generated by regen{{with .Source}} from {{.}}{{end}}; DO NOT EDIT.
{{with .Tags}}
//go:build {{.}}
{{end}}
package {{.Package}}

import "{{.Import}}"
{{range .Peripherals}}{{template "peripheral" .}}{{end}}
{{- end}}`

const peripheralTmpl = `{{define "peripheral"}}
{{- if .Consts}}
// {{.Name}} constants.
const (
{{- range .Consts}}
{{.Ident}} = {{.Value}}{{with .Doc}} // {{.}}{{end}}
{{- end}}
)
{{end}}
// {{.Type}} is the register map of the {{.Name}} peripheral.
{{- with .Doc}}
//
// {{.}}
{{- end}}
type {{.Type}} struct {
{{- range .Registers}}
{{- with .Doc}}
// {{.}}
{{- end}}
{{.Ident}} struct {
Reg bitfield.Register[{{.Word}}]
{{- range .Fields}}
{{.Ident}} {{.Type}}{{with .Doc}} // {{.}}{{end}}
{{- end}}
}
{{- end}}
}

// New{{.Type}} returns the {{.Name}} registers at base.
func New{{.Type}}(base uintptr) (p *{{.Type}}) {
p = &{{.Type}}{}
{{- range .Registers}}
{{- if .Array}}
p.{{.Ident}}.Reg = bitfield.NewArray[{{.Word}}](base+{{hex .Offset}}, {{hex .Stride}})
{{- else}}
p.{{.Ident}}.Reg = bitfield.NewRegister[{{.Word}}](base+{{hex .Offset}})
{{- end}}
{{- $reg := .Ident}}
{{- range .Fields}}
p.{{$reg}}.{{.Ident}} = {{.Ctor}}(p.{{$reg}}.Reg, {{.Args}})
{{- end}}
{{- end}}
return
}
{{with .Instances}}
var (
{{- range .}}
{{.Ident}} = New{{$.Type}}({{hex .Base}}){{with .Doc}} // {{.}}{{end}}
{{- end}}
)
{{end}}
// A field which does not fit its register or its value type overflows
// one of these constants.
const (
{{- range .Checks}}
_ {{.Type}} = 1<<{{.Bits}} - 1 // {{.Path}}
{{- end}}
)
{{end}}`

var _templates = template.Must(template.New("").Funcs(_template_funcs).Parse(fileTmpl + peripheralTmpl))
