package recommender

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// BridgeRule appends Keywords to the query when Pattern matches the idea.
// It lets Korean ideas land near the English catalog descriptions.
type BridgeRule struct {
	Pattern  *regexp.Regexp
	Keywords string
}

func rule(pattern, keywords string) BridgeRule {
	return BridgeRule{Pattern: regexp.MustCompile(pattern), Keywords: keywords}
}

// DefaultBridge is evaluated in order; every matching rule contributes.
var DefaultBridge = []BridgeRule{
	rule(`웹\s*(사이트|앱|어플|페이지)?`, "web application website"),
	rule(`모바일|핸드폰`, "mobile app"),
	rule(`앱`, "app application"),
	rule(`(?i)ios|아이폰`, "iOS Apple mobile native"),
	rule(`(?i)android|안드로이드`, "Android mobile native"),
	rule(`프론트(엔드)?`, "frontend UI web"),
	rule(`백엔드|서버`, "backend server API"),
	rule(`실시간`, "realtime websocket live"),
	rule(`채팅|메신저`, "chat messaging realtime communication"),
	rule(`대시보드`, "dashboard analytics chart visualization"),
	rule(`쇼핑|커머스|결제`, "e-commerce shopping payment store"),
	rule(`블로그|게시판|글`, "blog CMS content board"),
	rule(`인증|로그인|회원`, "authentication login user auth"),
	rule(`관리자|어드민`, "admin management panel"),
	rule(`(?i)AI|인공지능|챗봇|추천`, "AI machine learning chatbot recommendation LLM"),
	rule(`데이터|분석`, "data analytics database"),
	rule(`이미지|사진|갤러리`, "image photo gallery upload media"),
	rule(`영상|비디오|스트리밍`, "video streaming media player"),
	rule(`지도|위치|GPS`, "map location GPS geolocation"),
	rule(`알림|푸시|노티`, "notification push alert realtime"),
	rule(`게임`, "game interactive realtime graphics"),
	rule(`협업|공유|팀`, "collaboration team sharing realtime sync"),
	rule(`에디터|편집`, "editor editing rich text document"),
	rule(`검색`, "search engine indexing filter"),
	rule(`소셜|SNS|피드`, "social network feed timeline community"),
	rule(`예약|스케줄|캘린더`, "booking schedule calendar appointment"),
	rule(`설문|투표|폼`, "form survey poll input"),
	rule(`파일|업로드|저장`, "file upload storage cloud"),
	rule(`간단|심플|가벼운`, "simple lightweight minimal"),
	rule(`대규모|엔터프라이즈`, "enterprise large scale production"),
}

var latinRun = regexp.MustCompile(`[a-zA-Z]+`)

// BuildQuery expands an idea into the text that gets embedded: the Latin
// words of the idea, then the idea itself, then every matched keyword bag.
// Rules see the text expanded so far, so an earlier bag can trigger a later
// rule.
func BuildQuery(idea string, rules []BridgeRule) string {
	text := idea
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			text += " " + r.Keywords
		}
	}
	latin := strings.Join(latinRun.FindAllString(idea, -1), " ")
	return strings.TrimSpace(latin + " " + text)
}

type bridgeFile struct {
	Rules []struct {
		Pattern  string `yaml:"pattern"`
		Keywords string `yaml:"keywords"`
	} `yaml:"rules"`
}

// LoadBridge reads a rule table from YAML:
//
//	rules:
//	  - pattern: "실시간"
//	    keywords: "realtime websocket live"
func LoadBridge(path string) ([]BridgeRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bridge file: %w", err)
	}
	var f bridgeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing bridge file %s: %w", path, err)
	}
	rules := make([]BridgeRule, 0, len(f.Rules))
	for i, r := range f.Rules {
		if strings.TrimSpace(r.Pattern) == "" || strings.TrimSpace(r.Keywords) == "" {
			return nil, fmt.Errorf("bridge rule %d: pattern and keywords are required", i+1)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("bridge rule %d: %w", i+1, err)
		}
		rules = append(rules, BridgeRule{Pattern: re, Keywords: strings.TrimSpace(r.Keywords)})
	}
	return rules, nil
}
