// Package crawlers 实现翻页器(Pager)及其两种驱动方式。
//
// 翻页器抽象了列表页的三个核心动作: 查询当前页链接、探测下一页控件、
// 点击控件前进。动态翻页器(RodPager)通过无头浏览器驱动,适用于
// JavaScript渲染的分页列表;静态翻页器(StaticPager)通过HTTP请求
// 跟随下一页控件的href,适用于服务端渲染的列表页。
package crawlers
