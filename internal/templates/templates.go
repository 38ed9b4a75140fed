package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var htmlFiles embed.FS

var Home,
	Ingredients,
	Dishes,
	Recipe,
	Saved *template.Template

func Init() error {
	funcs := template.FuncMap{
		"trimZeros": trimZeros,
	}
	tmpls, err := template.New("all").Funcs(funcs).ParseFS(htmlFiles, "*.html")
	if err != nil {
		return err
	}
	Home = ensure(tmpls, "home.html")
	Ingredients = ensure(tmpls, "ingredients.html")
	Dishes = ensure(tmpls, "dishes.html")
	Recipe = ensure(tmpls, "recipe.html")
	Saved = ensure(tmpls, "saved.html")
	return nil
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}
